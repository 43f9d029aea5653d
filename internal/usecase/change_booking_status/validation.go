package change_booking_status

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	return nil
}
