package httpapi

import (
	"encoding/json"
	"io"
	"math"
	"net/mail"
	"strconv"
	"time"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
	ordersvc "github.com/vladislavdragonenkov/pastelaria/internal/service/orders"
)

// Сообщения полевой валидации клиентов и товаров.
const (
	msgNomeRequired        = "O campo nome é obrigatório."
	msgEmailRequired       = "O campo e-mail é obrigatório."
	msgEmailInvalid        = "O campo e-mail deve ser um e-mail válido."
	msgNascimentoRequired  = "O campo nascimento é obrigatório."
	msgNascimentoInvalid   = "O campo nascimento deve ser uma data válida."
	msgEnderecoRequired    = "O campo endereço é obrigatório."
	msgComplementoRequired = "O campo complemento é obrigatório."
	msgBairroRequired      = "O campo bairro é obrigatório."
	msgCEPRequired         = "O campo CEP é obrigatório."
	msgPrecoRequired       = "O campo preço é obrigatório."
	msgPrecoNumeric        = "O campo preço deve ser um número."
	msgFotoRequired        = "O campo foto é obrigatório."
)

type customerRequest struct {
	Nome        *string `json:"nome"`
	Email       *string `json:"email"`
	Nascimento  *string `json:"nascimento"`
	Endereco    *string `json:"endereco"`
	Complemento *string `json:"complemento"`
	Bairro      *string `json:"bairro"`
	CEP         *string `json:"cep"`
}

// decodeBody разбирает JSON-тело. Нечитаемое тело трактуется как пустой
// payload: дальше его добьёт полевая валидация, как в исходном контракте.
func decodeBody(body io.Reader, v any) {
	_ = json.NewDecoder(body).Decode(v)
}

func present(s *string) bool {
	return s != nil && *s != ""
}

// validateCustomer собирает ВСЕ нарушения полей клиента.
func validateCustomer(req customerRequest) (domain.Customer, map[string][]string) {
	violations := map[string][]string{}
	add := func(field, message string) {
		violations[field] = append(violations[field], message)
	}

	if !present(req.Nome) {
		add("nome", msgNomeRequired)
	}
	switch {
	case !present(req.Email):
		add("email", msgEmailRequired)
	default:
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			add("email", msgEmailInvalid)
		}
	}
	switch {
	case !present(req.Nascimento):
		add("nascimento", msgNascimentoRequired)
	default:
		if _, err := time.Parse("2006-01-02", *req.Nascimento); err != nil {
			add("nascimento", msgNascimentoInvalid)
		}
	}
	if !present(req.Endereco) {
		add("endereco", msgEnderecoRequired)
	}
	if !present(req.Complemento) {
		add("complemento", msgComplementoRequired)
	}
	if !present(req.Bairro) {
		add("bairro", msgBairroRequired)
	}
	if !present(req.CEP) {
		add("cep", msgCEPRequired)
	}

	if len(violations) > 0 {
		return domain.Customer{}, violations
	}

	return domain.Customer{
		Nome:        *req.Nome,
		Email:       *req.Email,
		Nascimento:  *req.Nascimento,
		Endereco:    *req.Endereco,
		Complemento: *req.Complemento,
		Bairro:      *req.Bairro,
		CEP:         *req.CEP,
	}, nil
}

type productRequest struct {
	Nome *string `json:"nome"`
	// Preco хранится сырым: отличие «не число» от «отсутствует» нужно контракту.
	Preco json.RawMessage `json:"preco"`
	Foto  *string         `json:"foto"`
}

// validateProduct собирает нарушения полей товара. Числовые строки для preco
// принимаются, как в исходной реализации.
func validateProduct(req productRequest) (domain.Product, map[string][]string) {
	violations := map[string][]string{}
	add := func(field, message string) {
		violations[field] = append(violations[field], message)
	}

	if !present(req.Nome) {
		add("nome", msgNomeRequired)
	}

	var preco float64
	switch {
	case len(req.Preco) == 0 || string(req.Preco) == "null":
		add("preco", msgPrecoRequired)
	default:
		value, ok := parseNumeric(req.Preco)
		if !ok {
			add("preco", msgPrecoNumeric)
		}
		preco = value
	}

	if !present(req.Foto) {
		add("foto", msgFotoRequired)
	}

	if len(violations) > 0 {
		return domain.Product{}, violations
	}

	return domain.Product{
		Nome:  *req.Nome,
		Preco: preco,
		Foto:  *req.Foto,
	}, nil
}

func parseNumeric(raw json.RawMessage) (float64, bool) {
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number, true
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if number, err := strconv.ParseFloat(text, 64); err == nil {
			return number, true
		}
	}
	return 0, false
}

type orderItemRequest struct {
	// ID и Quantity хранятся сырыми: контракт принимает и числа,
	// и числовые строки вида "2".
	ID       json.RawMessage `json:"id"`
	Quantity json.RawMessage `json:"quantity"`
}

// parseItemID принимает целое число либо целочисленную строку.
// Дробные, нечисловые и выходящие за диапазон значения дают nil.
func parseItemID(raw json.RawMessage) *int64 {
	value, ok := parseNumeric(raw)
	if !ok || value != math.Trunc(value) || value > math.MaxInt32 || value < math.MinInt32 {
		return nil
	}
	id := int64(value)
	return &id
}

type orderRequest struct {
	CustomerID *int64          `json:"customer_id"`
	Products   json.RawMessage `json:"products"`
}

// toPayload переводит сырое тело заказа в payload валидатора, различая
// отсутствующие, некорректно типизированные и нормальные значения.
func (req orderRequest) toPayload() ordersvc.OrderPayload {
	payload := ordersvc.OrderPayload{CustomerID: req.CustomerID}

	if len(req.Products) == 0 || string(req.Products) == "null" {
		return payload
	}
	payload.ProductsPresent = true

	var items []orderItemRequest
	if err := json.Unmarshal(req.Products, &items); err != nil {
		payload.ProductsInvalid = true
		return payload
	}

	payload.Products = make([]ordersvc.ItemPayload, 0, len(items))
	for _, item := range items {
		var entry ordersvc.ItemPayload
		if len(item.ID) > 0 && string(item.ID) != "null" {
			entry.ID = parseItemID(item.ID)
		}
		if len(item.Quantity) > 0 && string(item.Quantity) != "null" {
			if quantity, ok := parseNumeric(item.Quantity); ok {
				entry.Quantity = &quantity
			} else {
				entry.QuantityInvalid = true
			}
		}
		payload.Products = append(payload.Products, entry)
	}

	return payload
}
