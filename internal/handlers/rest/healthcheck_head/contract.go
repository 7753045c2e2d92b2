//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=healthcheck_head_test
package healthcheck_head

import "context"

// ReadinessChecker зависимость, без которой сервис не принимает трафик.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}
