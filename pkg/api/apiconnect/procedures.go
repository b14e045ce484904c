package apiconnect

const (
	UserServiceName    = "ledger.v1.UserService"
	LedgerServiceName  = "ledger.v1.LedgerService"
	BalanceServiceName = "ledger.v1.BalanceService"
)

const (
	UserServiceRegisterProcedure       = "/ledger.v1.UserService/Register"
	UserServiceLoginProcedure          = "/ledger.v1.UserService/Login"
	UserServiceGetCurrentUserProcedure = "/ledger.v1.UserService/GetCurrentUser"
	UserServiceGetUserProcedure        = "/ledger.v1.UserService/GetUser"
	UserServiceListUsersProcedure      = "/ledger.v1.UserService/ListUsers"

	LedgerServiceCreateBatchProcedure       = "/ledger.v1.LedgerService/CreateBatch"
	LedgerServiceAddBatchMembersProcedure   = "/ledger.v1.LedgerService/AddBatchMembers"
	LedgerServiceAddExpenseProcedure        = "/ledger.v1.LedgerService/AddExpense"
	LedgerServiceGetExpenseProcedure        = "/ledger.v1.LedgerService/GetExpense"
	LedgerServiceListUserExpensesProcedure  = "/ledger.v1.LedgerService/ListUserExpenses"
	LedgerServiceListBatchExpensesProcedure = "/ledger.v1.LedgerService/ListBatchExpenses"

	BalanceServiceGetUserBalanceSheetProcedure  = "/ledger.v1.BalanceService/GetUserBalanceSheet"
	BalanceServiceGetBatchBalanceSheetProcedure = "/ledger.v1.BalanceService/GetBatchBalanceSheet"
)

// PublicProcedures need no bearer token.
var PublicProcedures = map[string]bool{
	UserServiceRegisterProcedure: true,
	UserServiceLoginProcedure:    true,
}
