package main

// @title VenComp API
// @version 1.0
// @description Computer parts store backend: catalog, orders, payments, comments and favorites
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/VCL-tt/BK-VenComp
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/VCL-tt/BK-VenComp/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication and password reset endpoints

// @tag.name Users
// @tag.description User management endpoints

// @tag.name Products
// @tag.description Catalog and specification endpoints

// @tag.name Orders
// @tag.description Cart and order endpoints

// @tag.name Payments
// @tag.description Checkout and receipt endpoints

// @tag.name Health
// @tag.description Health check endpoints
