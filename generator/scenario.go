package generator

import "paysynth/models"

// Scenario tuning constants. These shape the story the dataset tells: one
// country drives adoption volume, another moves rare but very large amounts,
// and both activity and amounts ramp up through the month.
const (
	// TopAdoptionCountry sends the most transactions.
	TopAdoptionCountry = "FR"
	// VIPCountry sends few transactions with much higher amounts.
	VIPCountry = "CH"

	// TxnTrendStrength skews transaction volume toward late-month days.
	TxnTrendStrength = 2.5
	// AmountTrendStrength grows amounts across the month.
	AmountTrendStrength = 0.8

	// SameCountryReceiverProb keeps transfers mostly local.
	SameCountryReceiverProb = 0.65
)

// Countries is the closed country set, in weight-table order.
var Countries = []string{"FR", "PT", "ES", "DE", "IT", "NL", "BE", "GB", "IE", "CH"}

// CountryWeights is the population distribution over Countries. Weights do not
// need to sum to 1.
var CountryWeights = []float64{0.38, 0.12, 0.10, 0.10, 0.10, 0.07, 0.06, 0.05, 0.01, 0.01}

// AdoptionRates gives the per-country probability that a user adopts the P2P
// feature and therefore qualifies as a transaction sender.
var AdoptionRates = map[string]float64{
	"FR": 0.75,
	"PT": 0.25, "ES": 0.25, "DE": 0.25, "IT": 0.25, "NL": 0.25,
	"BE": 0.25, "GB": 0.25, "IE": 0.25,
	"CH": 0.08,
}

// AmountMultipliers scales transaction amounts by sender country.
var AmountMultipliers = map[string]float64{
	"FR": 1.10,
	"PT": 1.00, "ES": 1.00, "DE": 1.00, "IT": 1.00, "NL": 1.00,
	"BE": 1.00, "GB": 1.00, "IE": 1.00,
	"CH": 8.00,
}

var currencies = []models.Currency{models.CurrencyBTC, models.CurrencyEUR, models.CurrencyUSD}
var currencyWeights = []float64{0.85, 0.10, 0.05}

var statuses = []models.TransactionStatus{
	models.TransactionStatusCompleted,
	models.TransactionStatusPending,
	models.TransactionStatusFailed,
}
var statusWeights = []float64{0.90, 0.07, 0.03}

var eventTypes = []models.EventType{
	models.EventTypeLogin,
	models.EventTypePageView,
	models.EventTypeButtonClick,
	models.EventTypeLogout,
}

var pages = []string{"/home", "/wallet", "/send", "/receive", "/settings", "/help", "/profile"}

var buttons = []string{"send_now", "request_money", "add_card", "logout", "support_chat", "confirm", "cancel"}

var devices = []string{"android", "ios", "web"}

var osNames = []string{"Android 14", "Android 13", "iOS 26", "iOS 18", "Windows 11", "macOS 14", "Ubuntu 22.04"}
