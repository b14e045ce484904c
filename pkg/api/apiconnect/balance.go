package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// BalanceServiceHandler is implemented by the balance sheet service.
type BalanceServiceHandler interface {
	GetUserBalanceSheet(context.Context, *connect.Request[api.GetUserBalanceSheetRequest]) (*connect.Response[api.GetUserBalanceSheetResponse], error)
	GetBatchBalanceSheet(context.Context, *connect.Request[api.GetBatchBalanceSheetRequest]) (*connect.Response[api.GetBatchBalanceSheetResponse], error)
}

// NewBalanceServiceHandler returns the mount path and handler for svc.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BalanceServiceGetUserBalanceSheetProcedure, connect.NewUnaryHandler(BalanceServiceGetUserBalanceSheetProcedure, svc.GetUserBalanceSheet, opts...))
	mux.Handle(BalanceServiceGetBatchBalanceSheetProcedure, connect.NewUnaryHandler(BalanceServiceGetBatchBalanceSheetProcedure, svc.GetBatchBalanceSheet, opts...))
	return "/" + BalanceServiceName + "/", mux
}

// BalanceServiceClient calls a remote BalanceService.
type BalanceServiceClient struct {
	getUserBalanceSheet  *connect.Client[api.GetUserBalanceSheetRequest, api.GetUserBalanceSheetResponse]
	getBatchBalanceSheet *connect.Client[api.GetBatchBalanceSheetRequest, api.GetBatchBalanceSheetResponse]
}

// NewBalanceServiceClient builds a client for the service at baseURL.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BalanceServiceClient {
	opts = clientOptions(opts)
	return &BalanceServiceClient{
		getUserBalanceSheet:  connect.NewClient[api.GetUserBalanceSheetRequest, api.GetUserBalanceSheetResponse](httpClient, baseURL+BalanceServiceGetUserBalanceSheetProcedure, opts...),
		getBatchBalanceSheet: connect.NewClient[api.GetBatchBalanceSheetRequest, api.GetBatchBalanceSheetResponse](httpClient, baseURL+BalanceServiceGetBatchBalanceSheetProcedure, opts...),
	}
}

func (c *BalanceServiceClient) GetUserBalanceSheet(ctx context.Context, req *connect.Request[api.GetUserBalanceSheetRequest]) (*connect.Response[api.GetUserBalanceSheetResponse], error) {
	return c.getUserBalanceSheet.CallUnary(ctx, req)
}

func (c *BalanceServiceClient) GetBatchBalanceSheet(ctx context.Context, req *connect.Request[api.GetBatchBalanceSheetRequest]) (*connect.Response[api.GetBatchBalanceSheetResponse], error) {
	return c.getBatchBalanceSheet.CallUnary(ctx, req)
}
