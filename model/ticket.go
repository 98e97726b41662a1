package model

// Ticket is one purchased seat for one projection. Tickets bought in the
// same checkout share an AppTransId; legacy records have none, which the
// backend serializes as null and decodes here as the empty string.
type Ticket struct {
	Id               string    `json:"id"`
	AppTransId       string    `json:"appTransId"`
	ProjectionId     string    `json:"projectionId"`
	SeatId           string    `json:"seatId"`
	UserId           string    `json:"userId"`
	FilmId           string    `json:"filmId"`
	SeatNumber       string    `json:"seatNumber"`
	RoomNumber       string    `json:"roomNumber"`
	Title            string    `json:"title"`
	StartTime        Timestamp `json:"startTime"`
	EndTime          Timestamp `json:"endTime"`
	PurchaseTime     Timestamp `json:"purchaseTime"`
	Price            float64   `json:"price"`
	IsPaymentSuccess bool      `json:"isPaymentSuccess"`
}

// Incomplete reports whether the record is missing fields the backend
// sometimes drops. Such tickets still count in every aggregate; the
// missing price is treated as zero.
func (t Ticket) Incomplete() bool {
	return t.Price == 0 || t.PurchaseTime.IsZero()
}

type CreateTicketRequest struct {
	ProjectionId string `json:"projectionId"`
	SeatId       string `json:"seatId"`
	UserId       string `json:"userId"`
}

// Page is the API's standard paginated envelope.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"totalItems"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}
