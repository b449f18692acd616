package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Buy Box Command Center API
// @version         0.1.0
// @description     Amazon competitive pricing advisor: product data proxies, tracked ASINs, and strategy recommendations.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
