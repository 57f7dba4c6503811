package main

import "rentChat/cmd/app"

// @title           Rent Chat API
// @description     Messaging service for the rental marketplace: tenant-landlord conversations, masked messages, unread tracking.
// @version         1.0
// @BasePath        /
func main() {
	app.GetApp().LetsGo()
}
