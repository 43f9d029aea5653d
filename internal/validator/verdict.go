package validator

// Reason причина отказа
type Reason string

const (
	ReasonInvalidRange              Reason = "invalid_range"
	ReasonPastStart                 Reason = "past_start"
	ReasonNoAvailabilityOnDay       Reason = "no_availability_on_day"
	ReasonOutsideAvailabilityWindow Reason = "outside_availability_window"
	ReasonOverlapsExistingBooking   Reason = "overlaps_existing_booking"
)

// outcomeAccept метка принятого бронирования в метриках и логах
const outcomeAccept = "accept"

var reasonErrors = map[Reason]error{
	ReasonInvalidRange:              ErrInvalidRange,
	ReasonPastStart:                 ErrPastStart,
	ReasonNoAvailabilityOnDay:       ErrNoAvailabilityOnDay,
	ReasonOutsideAvailabilityWindow: ErrOutsideAvailabilityWindow,
	ReasonOverlapsExistingBooking:   ErrOverlapsExistingBooking,
}

// Verdict результат проверки: Accept или Reject с причиной.
// Нулевое значение - Accept.
type Verdict struct {
	reason Reason
}

// Accept разрешает бронирование
func Accept() Verdict {
	return Verdict{}
}

// Reject отклоняет бронирование
func Reject(reason Reason) Verdict {
	return Verdict{reason: reason}
}

// Accepted true, если бронирование можно сохранять
func (v Verdict) Accepted() bool {
	return v.reason == ""
}

// Reason причина отказа, пустая для Accept
func (v Verdict) Reason() Reason {
	return v.reason
}

// Err возвращает sentinel-ошибку причины (nil для Accept), чтобы вызывающий код
// мог пробросить отказ через errors.Is
func (v Verdict) Err() error {
	if v.Accepted() {
		return nil
	}
	return reasonErrors[v.reason]
}

// String "accept" или код причины
func (v Verdict) String() string {
	if v.Accepted() {
		return outcomeAccept
	}
	return string(v.reason)
}
