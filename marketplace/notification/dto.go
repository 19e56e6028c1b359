package notification

// FeedResponse is the bell menu payload
type FeedResponse struct {
	Notifications []Notification `json:"notifications"`
	Unread        int            `json:"unread"`
}
