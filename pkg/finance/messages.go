package finance

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is the locale of user facing messages if none is configured.
var DefaultLocale = language.BrazilianPortuguese

// Message keys. They double as the English translation.
const (
	msgAuthentication   = "You need to sign in to do this."
	msgBackend          = "The request could not be completed. Please try again."
	msgNotFound         = "The requested item does not exist."
	msgForbidden        = "You are not allowed to do this."
	msgConstraint       = "The change conflicts with existing data."
	msgUnavailable      = "The service is currently unavailable. Please try again later."
	msgRequired         = "%s is required."
	msgPositive         = "%s must be greater than zero."
	msgNotNegative      = "%s cannot be negative."
	msgInvalidValue     = "%s has an invalid value."
	msgInvalidReference = "%s is not a valid reference."
	msgDateRange        = "The start date must not be after the end date."
	msgAmountRange      = "The minimum amount must not be greater than the maximum amount."
	msgDayOfMonth       = "%s must be a day between 1 and 31."
	msgCreditAboveLimit = "The available credit cannot exceed the limit."
	msgTransferWallet   = "A transfer needs a destination wallet different from the source wallet."
	msgOnlyTransfers    = "Only transfers have a destination wallet."
	msgMonth            = "The month must be between 1 and 12."
	msgNoCategory       = "No category"
)

// Input fields and their labels in messages
var labels = map[string]string{
	"name":                  "Name",
	"amount":                "Amount",
	"description":           "Description",
	"type":                  "Type",
	"date":                  "Date",
	"wallet_id":             "Wallet",
	"destination_wallet_id": "Destination wallet",
	"category_id":           "Category",
	"credit_card_id":        "Credit card",
	"currency":              "Currency",
	"limit":                 "Limit",
	"available_credit":      "Available credit",
	"closing_day":           "Closing day",
	"due_day":               "Due day",
	"recurrence_frequency":  "Recurrence frequency",
	"recurrence_end_date":   "Recurrence end date",
	"workspace_id":          "Workspace",
	"user_id":               "User",
	"role":                  "Role",
	"title":                 "Title",
	"message":               "Message",
	"period_end":            "Period end",
	"month":                 "Month",
}

func init() {
	for key, translation := range map[string]string{
		msgAuthentication:   "Você precisa entrar para fazer isso.",
		msgBackend:          "Não foi possível concluir a solicitação. Tente novamente.",
		msgNotFound:         "O item solicitado não existe.",
		msgForbidden:        "Você não tem permissão para fazer isso.",
		msgConstraint:       "A alteração conflita com dados existentes.",
		msgUnavailable:      "O serviço está indisponível no momento. Tente novamente mais tarde.",
		msgRequired:         "%s é obrigatório.",
		msgPositive:         "%s deve ser maior que zero.",
		msgNotNegative:      "%s não pode ser negativo.",
		msgInvalidValue:     "%s tem um valor inválido.",
		msgInvalidReference: "%s não é uma referência válida.",
		msgDateRange:        "A data inicial não pode ser posterior à data final.",
		msgAmountRange:      "O valor mínimo não pode ser maior que o valor máximo.",
		msgDayOfMonth:       "%s deve ser um dia entre 1 e 31.",
		msgCreditAboveLimit: "O crédito disponível não pode exceder o limite.",
		msgTransferWallet:   "Uma transferência precisa de uma carteira de destino diferente da carteira de origem.",
		msgOnlyTransfers:    "Somente transferências têm carteira de destino.",
		msgMonth:            "O mês deve estar entre 1 e 12.",
		msgNoCategory:       "Sem Categoria",

		"Name":                 "Nome",
		"Amount":               "Valor",
		"Description":          "Descrição",
		"Type":                 "Tipo",
		"Date":                 "Data",
		"Wallet":               "Carteira",
		"Destination wallet":   "Carteira de destino",
		"Category":             "Categoria",
		"Credit card":          "Cartão de crédito",
		"Currency":             "Moeda",
		"Limit":                "Limite",
		"Available credit":     "Crédito disponível",
		"Closing day":          "Dia de fechamento",
		"Due day":              "Dia de vencimento",
		"Recurrence frequency": "Frequência de recorrência",
		"Recurrence end date":  "Data final da recorrência",
		"Workspace":            "Espaço de trabalho",
		"User":                 "Usuário",
		"Role":                 "Função",
		"Title":                "Título",
		"Message":              "Mensagem",
		"Period end":           "Fim do período",
		"Month":                "Mês",
	} {
		_ = message.SetString(language.BrazilianPortuguese, key, translation)
	}
}
