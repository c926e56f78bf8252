package model

// Participation is the explicit yes/no answer to the display competition
// question. The empty value means the user has not chosen yet.
type Participation string

const (
	ParticipationYes Participation = "Yes"
	ParticipationNo  Participation = "No"
)

// PhotoRole tags an uploaded photo with its semantic meaning; the role
// becomes a storage path segment.
type PhotoRole string

const (
	PhotoRoleEducation          PhotoRole = "education"
	PhotoRolePoster             PhotoRole = "poster"
	PhotoRoleDisplayCompetition PhotoRole = "display_competition"
)

// StatusSubmitted is the only status this flow writes.
const StatusSubmitted = "Submitted"

// Layouts for the Date and Timestamp columns.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Sheet names the tabular store column headers. Column order of
// MainSheetHeaders is part of the external contract and must not change.
var (
	MainSheetHeaders = []string{
		"Store_Name",
		"Employee_Name",
		"Date",
		"Education_Photo_URL",
		"Poster_Photo_URL",
		"Participation_Competition",
		"Display_Competition_Photo_URL",
		"Non_Participation_Reason",
		"Timestamp",
		"Status",
	}

	StoreSheetHeaders    = []string{"Store_Name"}
	EmployeeSheetHeaders = []string{"Employee_Name"}
)

// SubmissionRecord is one finalized display competition entry. Records are
// immutable once created; the sink is append-only with no update or delete
// path. Exactly one of DisplayPhotoURL and NonParticipationReason is
// non-empty, determined by Participation.
type SubmissionRecord struct {
	StoreName              string        `json:"store_name"`
	EmployeeName           string        `json:"employee_name"`
	Date                   string        `json:"date"`
	EducationPhotoURL      string        `json:"education_photo_url"`
	PosterPhotoURL         string        `json:"poster_photo_url"`
	Participation          Participation `json:"participation_competition"`
	DisplayPhotoURL        string        `json:"display_competition_photo_url"`
	NonParticipationReason string        `json:"non_participation_reason"`
	SubmittedAt            string        `json:"timestamp"`
	Status                 string        `json:"status"`

	// NonPublicPhotos lists the roles whose objects were stored but could
	// not be made publicly readable (partial success). Not a sheet column.
	NonPublicPhotos []string `json:"non_public_photos,omitempty"`
}

// Row returns the record as a sheet row in MainSheetHeaders order.
func (r *SubmissionRecord) Row() []string {
	return []string{
		r.StoreName,
		r.EmployeeName,
		r.Date,
		r.EducationPhotoURL,
		r.PosterPhotoURL,
		string(r.Participation),
		r.DisplayPhotoURL,
		r.NonParticipationReason,
		r.SubmittedAt,
		r.Status,
	}
}
