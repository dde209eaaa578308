package api

import (
	"fmt"
	"strconv"
	"strings"
)

type currencyRequest struct {
	Currency string `json:"currency"`
}

type newAddressRequest struct {
	Currency string  `json:"currency"`
	Label    *string `json:"label,omitempty"`
}

type validateAddressRequest struct {
	Currency string `json:"currency"`
	Address  string `json:"address"`
}

// GetAccountInfo retrieves the authenticated account summary
func (c *Client) GetAccountInfo() (*AccountInfo, error) {
	info, err := call[AccountInfo](c, pathAccountInfo, nil)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetBalance retrieves the balance for a single currency
func (c *Client) GetBalance(currency string) (*Balance, error) {
	balance, err := call[Balance](c, pathBalance, currencyRequest{Currency: currency})
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// GetBalances retrieves all non-zero balances
func (c *Client) GetBalances() ([]Balance, error) {
	return callList[Balance](c, pathBalances, nil)
}

// GetFees retrieves the account's current fee schedule
func (c *Client) GetFees() (*FeeSchedule, error) {
	fees, err := call[FeeSchedule](c, pathFees, nil)
	if err != nil {
		return nil, err
	}
	return &fees, nil
}

// GetStaticAddresses retrieves the deposit addresses for a currency
func (c *Client) GetStaticAddresses(currency string) ([]StaticAddress, error) {
	return callList[StaticAddress](c, pathAddresses, currencyRequest{Currency: currency})
}

// CreateStaticAddress provisions a new deposit address. The label is
// optional and omitted from the payload when empty.
func (c *Client) CreateStaticAddress(currency, label string) (*StaticAddress, error) {
	req := newAddressRequest{Currency: currency}
	if label != "" {
		req.Label = &label
	}

	address, err := call[StaticAddress](c, pathAddressNew, req)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// ValidateBlockchainAddress checks whether an address is well formed for the
// given currency. The endpoint answers with the literal body text "true" or
// "false" rather than a JSON object, so the body is parsed directly.
func (c *Client) ValidateBlockchainAddress(currency, address string) (bool, error) {
	resp, err := c.doRequest(pathAddressValidate, validateAddressRequest{
		Currency: currency,
		Address:  address,
	})
	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"path": pathAddressValidate,
		}).Error("nova request failed before a response was obtained")
		return false, err
	}

	if !resp.successful() {
		apiErr := &ApiError{
			Message: string(resp.Body),
			Code:    strconv.Itoa(resp.StatusCode),
		}
		c.logger.WithFields(map[string]interface{}{
			"path":    pathAddressValidate,
			"code":    apiErr.Code,
			"message": apiErr.Message,
		}).Error("nova request rejected")
		return false, apiErr
	}

	valid, err := strconv.ParseBool(strings.TrimSpace(string(resp.Body)))
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"path": pathAddressValidate,
			"body": string(resp.Body),
		}).Error("unexpected validate response body")
		return false, fmt.Errorf("failed to parse validate response %q: %w", string(resp.Body), err)
	}

	return valid, nil
}
