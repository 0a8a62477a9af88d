package runner

//go:generate mockgen -destination=./executor.go -package=runner github.com/jonesrussell/queryvalidator/internal/runner Executor
