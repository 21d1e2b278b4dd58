package config

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseApp is the shared Firebase application handle.
var FirebaseApp *firebase.App

// FirebaseInit initializes the Firebase App used for authentication and,
// when the firestore gateway driver is selected, document writes.
func FirebaseInit() {
	ctx := context.Background()

	var opts []option.ClientOption
	if AppConfig.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(AppConfig.FirebaseCredentialsFile))
	}

	conf := &firebase.Config{ProjectID: AppConfig.FirebaseProjectID}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}
	FirebaseApp = app
}

// GetFirebaseApp returns the shared Firebase app, initializing it on first use.
func GetFirebaseApp() *firebase.App {
	if FirebaseApp == nil {
		FirebaseInit()
	}
	return FirebaseApp
}
