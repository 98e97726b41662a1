package model

// Projection is a single scheduled screening of a film in a room.
type Projection struct {
	Id        string    `json:"id"`
	FilmId    string    `json:"filmId"`
	RoomId    string    `json:"roomId"`
	StartTime Timestamp `json:"startTime"`
	EndTime   Timestamp `json:"endTime"`
	Price     float64   `json:"price"`
	Film      *Film     `json:"film"`
	Room      *Room     `json:"room"`
}

type Room struct {
	Id         string `json:"id"`
	RoomNumber string `json:"roomNumber"`
	RoomType   string `json:"roomType"`
	Capacity   int    `json:"capacity"`
	Seats      []Seat `json:"seats"`
}

// Seat is one seat in a room's fixed layout. IsAvailable is false once a
// confirmed ticket exists for the seat on the projection it was fetched
// for.
type Seat struct {
	Id          string `json:"id"`
	SeatNumber  string `json:"seatNumber"`
	RoomId      string `json:"roomId"`
	IsAvailable bool   `json:"isAvailable"`
}
