package service

import "context"

type Service interface {
	// Run starts the service and blocks until it is done. Cancelling ctx asks
	// the service to stop.
	Run(ctx context.Context) error
}
