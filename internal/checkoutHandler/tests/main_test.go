package tests

import (
	"testing"

	config "baul-moda/config/database"
)

func TestMain(m *testing.M) {
	config.InitDB()
	defer config.CloseDB()
	config.MigrateData()

	// Run the tests
	m.Run()
}
