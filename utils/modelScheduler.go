package utils

import (
	"log"

	"coursegen/ai"

	"github.com/robfig/cron/v3"
)

// StartModelScheduler refreshes the candidate model list every hour so
// that models withdrawn by the provider drop out of the preference order
// without a restart.
func StartModelScheduler(client *ai.Client) *cron.Cron {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		client.RefreshModels()
	})

	c.Start()
	log.Println("Model discovery scheduler started - runs hourly")
	return c
}
