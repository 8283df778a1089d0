package reservation

// ReserveRequest is the web reservation form. The LINE user id comes from the
// LIFF flow; the web identity comes from the bearer token, not the body.
type ReserveRequest struct {
	RoomID     int64  `json:"room_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Name       string `json:"name" binding:"required"`
	LineUserID string `json:"line_user_id"`
}

type ReservationItem struct {
	ID        int64  `json:"id"`
	RoomID    int64  `json:"room_id"`
	RoomName  string `json:"room_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Name      string `json:"name"`
	Status    string `json:"status"`
}
