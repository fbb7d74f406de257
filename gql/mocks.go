package gql

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type ExecutorMock struct {
	mock.Mock
}

func NewExecutorMock() *ExecutorMock {
	return &ExecutorMock{}
}

func (o *ExecutorMock) Execute(
	ctx context.Context, query string, variables map[string]interface{},
) (map[string]interface{}, error) {
	args := o.Called(ctx, query, variables)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(map[string]interface{}), args.Error(1)
}
