package api

import (
	"github.com/shopspring/decimal"
)

type idRequest struct {
	ID string `json:"id"`
}

type feeQuoteRequest struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// Withdraw enqueues a withdrawal to an external blockchain address and
// returns the ledger transaction id.
func (c *Client) Withdraw(req *WithdrawRequest) (*TransactionID, error) {
	txID, err := call[TransactionID](c, pathWithdraw, req)
	if err != nil {
		return nil, err
	}
	return &txID, nil
}

// GetWithdrawFee quotes the fee for a prospective withdrawal
func (c *Client) GetWithdrawFee(currency string, amount decimal.Decimal) (*WithdrawFee, error) {
	fee, err := call[WithdrawFee](c, pathWithdrawFee, feeQuoteRequest{
		Currency: currency,
		Amount:   amount,
	})
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

// GetWithdrawals lists withdrawals matching the filter. A nil filter lists
// everything.
func (c *Client) GetWithdrawals(filter *TransactionFilter) ([]Transaction, error) {
	if filter == nil {
		filter = &TransactionFilter{}
	}
	return callList[Transaction](c, pathWithdrawals, filter)
}

// GetWithdrawal retrieves a single withdrawal by id
func (c *Client) GetWithdrawal(id string) (*Transaction, error) {
	tx, err := call[Transaction](c, pathWithdrawalGet, idRequest{ID: id})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetDeposits lists deposits matching the filter
func (c *Client) GetDeposits(filter *TransactionFilter) ([]Transaction, error) {
	if filter == nil {
		filter = &TransactionFilter{}
	}
	return callList[Transaction](c, pathDeposits, filter)
}

// GetDeposit retrieves a single deposit by id
func (c *Client) GetDeposit(id string) (*Transaction, error) {
	tx, err := call[Transaction](c, pathDepositGet, idRequest{ID: id})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// Transfer moves funds to another Nova user and returns the ledger
// transaction id.
func (c *Client) Transfer(req *TransferRequest) (*TransactionID, error) {
	txID, err := call[TransactionID](c, pathTransfer, req)
	if err != nil {
		return nil, err
	}
	return &txID, nil
}

// GetTransfers lists internal transfers matching the filter
func (c *Client) GetTransfers(filter *TransactionFilter) ([]Transaction, error) {
	if filter == nil {
		filter = &TransactionFilter{}
	}
	return callList[Transaction](c, pathTransfers, filter)
}

// GetTransaction retrieves a single ledger transaction of any type by id
func (c *Client) GetTransaction(id string) (*Transaction, error) {
	tx, err := call[Transaction](c, pathTransactionGet, idRequest{ID: id})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransactions lists ledger transactions of all types matching the filter
func (c *Client) GetTransactions(filter *TransactionFilter) ([]Transaction, error) {
	if filter == nil {
		filter = &TransactionFilter{}
	}
	return callList[Transaction](c, pathTransactions, filter)
}
