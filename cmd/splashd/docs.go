package main

// General API documentation for swaggo. Run `swag init -g cmd/splashd/docs.go` to regenerate docs/.
//
// @title           splashd API
// @version         1.0
// @description     Splash screen service with an in-process event dispatcher.
//
// @contact.name   splashd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
