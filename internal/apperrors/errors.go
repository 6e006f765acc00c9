package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given symbol or ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCashFlowNotFound indicates that a cash flow record with the given ID does not exist.
	ErrCashFlowNotFound = errors.New("cash flow not found")

	// ErrBalanceNotFound indicates that the balance cache has never been built for the account.
	ErrBalanceNotFound = errors.New("account balance not found")

	// ErrSnapshotNotFound indicates that no snapshot exists for the account and date.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSettingNotFound indicates that a system setting with the given key does not exist.
	ErrSettingNotFound = errors.New("system setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidAction indicates an unknown transaction action.
	ErrInvalidAction = errors.New("invalid transaction action")

	// ErrInvalidFlowType indicates an unknown cash flow type.
	ErrInvalidFlowType = errors.New("invalid cash flow type")

	// ErrUnsupportedCurrency indicates a currency outside the tracked set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrNonPositiveQuantity indicates a quantity or amount that is not strictly positive.
	// Direction is carried by the action/type, never by sign.
	ErrNonPositiveQuantity = errors.New("quantity must be positive")

	// ErrNegativeAmount indicates an amount field with an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidYear indicates a performance year outside the sensible range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveDashboard    = errors.New("failed to retrieve dashboard")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveCashFlows    = errors.New("failed to retrieve cash flows")
	ErrFailedToRetrieveCashFlow     = errors.New("failed to retrieve cash flow")
	ErrFailedToRetrieveBalance      = errors.New("failed to retrieve account balance")
	ErrFailedToRetrievePerformance  = errors.New("failed to retrieve performance report")
	ErrFailedToUpdatePrices         = errors.New("failed to update prices")
	ErrFailedToRunSnapshot          = errors.New("failed to run snapshot")
	ErrFailedToImportTransactions   = errors.New("failed to import transactions")
	ErrFailedToRetrieveSettings     = errors.New("failed to retrieve settings")
	ErrFailedToUpdateSettings       = errors.New("failed to update settings")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
	ErrInvalidCSVHeaders            = errors.New("invalid CSV headers")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a transaction references an asset that doesn't exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
