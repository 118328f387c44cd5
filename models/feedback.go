package models

type Feedback struct {
	UserID    string `json:"user_id" bson:"user_id"`
	Rating    int    `json:"rating" bson:"rating"`
	Message   string `json:"message" bson:"message"`
	Page      string `json:"page,omitempty" bson:"page,omitempty"`
	CreatedAt int64  `json:"created_at" bson:"created_at"`
}
