package config

import (
	"log"
	"os"
	"strconv"
)

// Settings holds business constants that must not live as magic literals
// at call sites. Loaded once at startup from the environment.
type Settings struct {
	// DefaultApplicationFee is charged (in XOF) when no per-country fee
	// row exists for the destination country.
	DefaultApplicationFee int64

	// UploadPath is the root directory of the local storage provider.
	UploadPath string

	// AutoReviewOnAssign moves an application to UNDER_REVIEW when an
	// admin assigns a university to it.
	AutoReviewOnAssign bool
}

var App Settings

func LoadSettings() {
	App = Settings{
		DefaultApplicationFee: 500000,
		UploadPath:            "./uploads",
		AutoReviewOnAssign:    true,
	}

	if v := os.Getenv("DEFAULT_APPLICATION_FEE"); v != "" {
		fee, err := strconv.ParseInt(v, 10, 64)
		if err != nil || fee <= 0 {
			log.Printf("Warning: invalid DEFAULT_APPLICATION_FEE %q, keeping %d", v, App.DefaultApplicationFee)
		} else {
			App.DefaultApplicationFee = fee
		}
	}

	if v := os.Getenv("UPLOAD_PATH"); v != "" {
		App.UploadPath = v
	}

	if v := os.Getenv("AUTO_REVIEW_ON_ASSIGN"); v != "" {
		App.AutoReviewOnAssign = v == "1" || v == "true"
	}
}
