package entity

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "CASH"
	PaymentUPI        PaymentMethod = "UPI"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
)
