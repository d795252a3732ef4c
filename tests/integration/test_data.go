package integration

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/screenengine/backend/internal/services"
)

// TestCredentials generates unique test user credentials.
func TestCredentials(suffix string) (username, email, password string) {
	id := uuid.NewString()[:8]
	username = fmt.Sprintf("user-%s-%s", id, suffix)
	email = fmt.Sprintf("test-%s-%s@example.com", id, suffix)
	password = "TestPassword123!"
	return
}

// registerReq builds a registration request with the required fields filled.
func registerReq(username, email, password string) services.RegisterRequest {
	return services.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		FullName: "Test User " + username,
	}
}
