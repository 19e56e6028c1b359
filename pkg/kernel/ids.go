package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type OfferID string

func NewOfferID(id string) OfferID { return OfferID(id) }
func (o OfferID) String() string   { return string(o) }
func (o OfferID) IsEmpty() bool    { return string(o) == "" }

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }

type CompanyID string

func NewCompanyID(id string) CompanyID { return CompanyID(id) }
func (c CompanyID) String() string     { return string(c) }
func (c CompanyID) IsEmpty() bool      { return string(c) == "" }

type AlertID string

func NewAlertID(id string) AlertID { return AlertID(id) }
func (a AlertID) String() string   { return string(a) }
func (a AlertID) IsEmpty() bool    { return string(a) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }

type ServiceID string

func NewServiceID(id string) ServiceID { return ServiceID(id) }
func (s ServiceID) String() string     { return string(s) }
func (s ServiceID) IsEmpty() bool      { return string(s) == "" }

type NotificationID string

func NewNotificationID(id string) NotificationID { return NotificationID(id) }
func (n NotificationID) String() string          { return string(n) }
func (n NotificationID) IsEmpty() bool           { return string(n) == "" }

type RatingID string

func NewRatingID(id string) RatingID { return RatingID(id) }
func (r RatingID) String() string    { return string(r) }
func (r RatingID) IsEmpty() bool     { return string(r) == "" }

type QuestionID string

func NewQuestionID(id string) QuestionID { return QuestionID(id) }
func (q QuestionID) String() string      { return string(q) }
func (q QuestionID) IsEmpty() bool       { return string(q) == "" }

type ReportID string

func NewReportID(id string) ReportID { return ReportID(id) }
func (r ReportID) String() string    { return string(r) }
func (r ReportID) IsEmpty() bool     { return string(r) == "" }

type SubscriberID string

func NewSubscriberID(id string) SubscriberID { return SubscriberID(id) }
func (s SubscriberID) String() string        { return string(s) }
func (s SubscriberID) IsEmpty() bool         { return string(s) == "" }
