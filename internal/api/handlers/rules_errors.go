package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/rules"
)

const (
	msgValidation    = "некорректные данные"
	msgDuplicateSlot = "такой временной слот уже существует"
)

// RespondValidationError 400 с именем поля, если ошибка его знает
func RespondValidationError(w http.ResponseWriter, err error) {
	body := ErrorResponse{Message: msgValidation}

	var ve *rules.ValidationError
	if errors.As(err, &ve) {
		body.Field = ve.Field
		body.Detail = ve.Reason
	}

	RespondJSON(w, http.StatusBadRequest, body)
}

// RespondDuplicateSlot 409 с описанием слота, который уже занят
func RespondDuplicateSlot(w http.ResponseWriter, err error) {
	body := ErrorResponse{Message: msgDuplicateSlot}

	var de *rules.DuplicateSlotError
	if errors.As(err, &de) {
		body.Detail = fmt.Sprintf("%s %s-%s", de.Weekday, de.StartTime, de.EndTime)
	}

	RespondJSON(w, http.StatusConflict, body)
}
