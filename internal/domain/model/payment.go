package model

import "time"

// PaymentType enumerates accepted payment methods.
type PaymentType string

const (
	PaymentTypeCreditCard      PaymentType = "credit_card"
	PaymentTypeDebitCard       PaymentType = "debit_card"
	PaymentTypeVisa            PaymentType = "visa"
	PaymentTypeMastercard      PaymentType = "mastercard"
	PaymentTypeAmericanExpress PaymentType = "american_express"
	PaymentTypePayPal          PaymentType = "paypal"
)

// PaymentTypes lists every accepted payment type.
var PaymentTypes = []PaymentType{
	PaymentTypeCreditCard,
	PaymentTypeDebitCard,
	PaymentTypeVisa,
	PaymentTypeMastercard,
	PaymentTypeAmericanExpress,
	PaymentTypePayPal,
}

// Payment is a stored payment method. Only the last four card digits are kept.
type Payment struct {
	ID          int64
	PaymentID   string
	OwnerID     string
	Username    string
	Name        string
	PaymentType PaymentType
	CardLast4   string
	ExpiryDate  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaymentPatch holds the stored fields of a partial payment update.
type PaymentPatch struct {
	Name        *string
	PaymentType *PaymentType
	CardLast4   *string
	ExpiryDate  *string
}
