package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

const (
	msgInvalidRange       = "время начала должно быть раньше времени окончания"
	msgPastStart          = "нельзя бронировать в прошлом"
	msgNoAvailability     = "комната недоступна в этот день недели"
	msgOutsideWindow      = "бронирование выходит за пределы окон доступности комнаты"
	msgOverlapsExisting   = "комната уже забронирована на это время"
	msgRejectedUnexpected = "бронирование отклонено"
)

// RespondRejection отвечает на отказ валидатора бронирования.
// Ошибки входа дают 400, расписание комнаты 422, пересечение 409.
func RespondRejection(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validator.ErrInvalidRange):
		RespondBadRequest(w, msgInvalidRange)
	case errors.Is(err, validator.ErrPastStart):
		RespondBadRequest(w, msgPastStart)
	case errors.Is(err, validator.ErrNoAvailabilityOnDay):
		RespondUnprocessable(w, msgNoAvailability)
	case errors.Is(err, validator.ErrOutsideAvailabilityWindow):
		RespondUnprocessable(w, msgOutsideWindow)
	case errors.Is(err, validator.ErrOverlapsExistingBooking):
		RespondConflict(w, msgOverlapsExisting)
	default:
		RespondUnprocessable(w, msgRejectedUnexpected)
	}
}
