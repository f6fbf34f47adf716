package payment

import (
	"fmt"
	"strings"
)

// Method is one of the fixed payment channels offered to tenants.
type Method string

const (
	MethodCard        Method = "carte"
	MethodTransfer    Method = "virement"
	MethodOrangeMoney Method = "orange"
	MethodMTNMoney    Method = "mtn"
	MethodPayPal      Method = "paypal"
	MethodCash        Method = "especes"
)

// Methods lists every channel in display order.
var Methods = []Method{
	MethodCard,
	MethodTransfer,
	MethodOrangeMoney,
	MethodMTNMoney,
	MethodPayPal,
	MethodCash,
}

// ParseMethod validates a raw method key.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}

	return m, nil
}

func (m Method) Valid() bool {
	switch m {
	case MethodCard, MethodTransfer, MethodOrangeMoney, MethodMTNMoney, MethodPayPal, MethodCash:
		return true
	}

	return false
}

// Label is the human readable name stored on paid records and receipts.
func (m Method) Label() string {
	switch m {
	case MethodCard:
		return "Carte bancaire"
	case MethodTransfer:
		return "Virement bancaire"
	case MethodOrangeMoney:
		return "Orange Money"
	case MethodMTNMoney:
		return "MTN Money"
	case MethodPayPal:
		return "PayPal"
	case MethodCash:
		return "Especes"
	}

	return ""
}

// Code is the suffix used in transaction ids.
func (m Method) Code() string {
	return strings.ToUpper(string(m))
}

// MethodFromLabel resolves the label form used in seed files and exports.
func MethodFromLabel(label string) (Method, bool) {
	for _, m := range Methods {
		if strings.EqualFold(m.Label(), strings.TrimSpace(label)) {
			return m, true
		}
	}

	return "", false
}
