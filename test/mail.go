// Package test provides testing utilities for the ngo-backend service,
// including the MongoDB and mail test containers.
package test

import (
	"context"
	"fmt"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	mailSMTPPort nat.Port = "1025/tcp"
	mailAPIPort  nat.Port = "8025/tcp"
)

// MailService is a running MailHog container. SMTPPort accepts the outgoing
// mail and APIPort serves the inbox search API.
type MailService struct {
	testcontainers.Container
	Host     string
	SMTPPort int
	APIPort  int
}

// StartMailService starts a MailHog container and resolves the host ports
// mapped to it.
func StartMailService(ctx context.Context) (*MailService, error) {
	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "mailhog/mailhog",
				ExposedPorts: []string{string(mailSMTPPort), string(mailAPIPort)},
				WaitingFor:   wait.ForListeningPort(mailSMTPPort),
			},
			Started: true,
		})
	if err != nil {
		return nil, err
	}
	ms := &MailService{Container: container}
	if ms.Host, err = container.Host(ctx); err != nil {
		return nil, fmt.Errorf("mail container host: %w", err)
	}
	smtpPort, err := container.MappedPort(ctx, mailSMTPPort)
	if err != nil {
		return nil, fmt.Errorf("mail container smtp port: %w", err)
	}
	apiPort, err := container.MappedPort(ctx, mailAPIPort)
	if err != nil {
		return nil, fmt.Errorf("mail container api port: %w", err)
	}
	ms.SMTPPort, ms.APIPort = smtpPort.Int(), apiPort.Int()
	return ms, nil
}
