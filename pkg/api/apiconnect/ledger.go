package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// LedgerServiceHandler is implemented by the batch and expense service.
type LedgerServiceHandler interface {
	CreateBatch(context.Context, *connect.Request[api.CreateBatchRequest]) (*connect.Response[api.CreateBatchResponse], error)
	AddBatchMembers(context.Context, *connect.Request[api.AddBatchMembersRequest]) (*connect.Response[api.AddBatchMembersResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListUserExpenses(context.Context, *connect.Request[api.ListUserExpensesRequest]) (*connect.Response[api.ListUserExpensesResponse], error)
	ListBatchExpenses(context.Context, *connect.Request[api.ListBatchExpensesRequest]) (*connect.Response[api.ListBatchExpensesResponse], error)
}

// NewLedgerServiceHandler returns the mount path and handler for svc.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceCreateBatchProcedure, connect.NewUnaryHandler(LedgerServiceCreateBatchProcedure, svc.CreateBatch, opts...))
	mux.Handle(LedgerServiceAddBatchMembersProcedure, connect.NewUnaryHandler(LedgerServiceAddBatchMembersProcedure, svc.AddBatchMembers, opts...))
	mux.Handle(LedgerServiceAddExpenseProcedure, connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerServiceGetExpenseProcedure, connect.NewUnaryHandler(LedgerServiceGetExpenseProcedure, svc.GetExpense, opts...))
	mux.Handle(LedgerServiceListUserExpensesProcedure, connect.NewUnaryHandler(LedgerServiceListUserExpensesProcedure, svc.ListUserExpenses, opts...))
	mux.Handle(LedgerServiceListBatchExpensesProcedure, connect.NewUnaryHandler(LedgerServiceListBatchExpensesProcedure, svc.ListBatchExpenses, opts...))
	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient calls a remote LedgerService.
type LedgerServiceClient struct {
	createBatch       *connect.Client[api.CreateBatchRequest, api.CreateBatchResponse]
	addBatchMembers   *connect.Client[api.AddBatchMembersRequest, api.AddBatchMembersResponse]
	addExpense        *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	getExpense        *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listUserExpenses  *connect.Client[api.ListUserExpensesRequest, api.ListUserExpensesResponse]
	listBatchExpenses *connect.Client[api.ListBatchExpensesRequest, api.ListBatchExpensesResponse]
}

// NewLedgerServiceClient builds a client for the service at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		createBatch:       connect.NewClient[api.CreateBatchRequest, api.CreateBatchResponse](httpClient, baseURL+LedgerServiceCreateBatchProcedure, opts...),
		addBatchMembers:   connect.NewClient[api.AddBatchMembersRequest, api.AddBatchMembersResponse](httpClient, baseURL+LedgerServiceAddBatchMembersProcedure, opts...),
		addExpense:        connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		getExpense:        connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+LedgerServiceGetExpenseProcedure, opts...),
		listUserExpenses:  connect.NewClient[api.ListUserExpensesRequest, api.ListUserExpensesResponse](httpClient, baseURL+LedgerServiceListUserExpensesProcedure, opts...),
		listBatchExpenses: connect.NewClient[api.ListBatchExpensesRequest, api.ListBatchExpensesResponse](httpClient, baseURL+LedgerServiceListBatchExpensesProcedure, opts...),
	}
}

func (c *LedgerServiceClient) CreateBatch(ctx context.Context, req *connect.Request[api.CreateBatchRequest]) (*connect.Response[api.CreateBatchResponse], error) {
	return c.createBatch.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddBatchMembers(ctx context.Context, req *connect.Request[api.AddBatchMembersRequest]) (*connect.Response[api.AddBatchMembersResponse], error) {
	return c.addBatchMembers.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListUserExpenses(ctx context.Context, req *connect.Request[api.ListUserExpensesRequest]) (*connect.Response[api.ListUserExpensesResponse], error) {
	return c.listUserExpenses.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListBatchExpenses(ctx context.Context, req *connect.Request[api.ListBatchExpensesRequest]) (*connect.Response[api.ListBatchExpensesResponse], error) {
	return c.listBatchExpenses.CallUnary(ctx, req)
}
