package main

// General API documentation for swaggo. Run `swag init -g cmd/folderd/docs.go -o docs` to regenerate.
//
// @title           folderd API
// @version         1.0
// @description     Suggests a folder for a file by asking a locally hosted language model.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
