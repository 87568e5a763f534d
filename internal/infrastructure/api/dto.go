package api

type eventDTO struct {
	EventID        int64   `json:"event_id"`
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Place          string  `json:"place"`
	City           string  `json:"city"`
	Description    string  `json:"description"`
	EventType      string  `json:"event_type"`
	Status         string  `json:"status"`
	LongURL        string  `json:"long_url"`
	MessageLink    string  `json:"message_link"`
	ImageURL       string  `json:"image_url"`
	EventTime      string  `json:"event_time"`
	EventEndTime   string  `json:"event_end_time"`
	Price          float64 `json:"price"`
	SeatsTotal     int     `json:"seats_total"`
	PurchasedCount int     `json:"purchased_count"`
	AccountID      int64   `json:"account_id"`
}

type eventCreateDTO struct {
	LongURL        string  `json:"long_url"`
	Name           string  `json:"name"`
	Place          string  `json:"place"`
	City           string  `json:"city"`
	EventTime      string  `json:"event_time"`
	Price          float64 `json:"price"`
	Description    string  `json:"description"`
	EventType      *string `json:"event_type"`
	MessageLink    *string `json:"message_link"`
	PurchasedCount int     `json:"purchased_count"`
	SeatsTotal     int     `json:"seats_total"`
	AccountID      int64   `json:"account_id"`
}

type eventPatchDTO struct {
	Name           *string  `json:"name,omitempty"`
	Place          *string  `json:"place,omitempty"`
	City           *string  `json:"city,omitempty"`
	Description    *string  `json:"description,omitempty"`
	EventType      *string  `json:"event_type,omitempty"`
	Status         *string  `json:"status,omitempty"`
	EventTime      *string  `json:"event_time,omitempty"`
	EventEndTime   *string  `json:"event_end_time,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	SeatsTotal     *int     `json:"seats_total,omitempty"`
	PurchasedCount *int     `json:"purchased_count,omitempty"`
}

type betweenDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type orderDTO struct {
	EventID       int64  `json:"event_id"`
	PaymentMethod string `json:"payment_method"`
	PeopleCount   int    `json:"people_count"`
	Email         string `json:"email"`
}

type orderResponseDTO struct {
	OrderID int64  `json:"order_id"`
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	Email   string `json:"email"`
	QRCode  string `json:"qrcode"`
}

type credentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponseDTO struct {
	LocalID      string `json:"localId"`
	UID          string `json:"uid"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type verifyEmailDTO struct {
	IDToken string `json:"id_token"`
}

type passwordResetDTO struct {
	Email string `json:"email"`
}

type passwordResetConfirmDTO struct {
	OOBCode     string `json:"oob_code"`
	NewPassword string `json:"new_password"`
}

type userDTO struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profile_image"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type userPatchDTO struct {
	DisplayName  *string `json:"display_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Role         *string `json:"role,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}
