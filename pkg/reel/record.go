package reel

import "strings"

// Columns lists the record keys in output order
var Columns = []string{
	"url",
	"reelId",
	"ownerUsername",
	"caption",
	"playCount",
	"likesCount",
	"commentsCount",
	"sharesCount",
	"reelDuration",
	"music",
	"reelDate",
	"reelDateTime",
	"img",
}

// Record is the metadata extracted from one reel page. A nil field means
// the page carried no signal for it. Every key is always serialized.
type Record struct {
	URL           *string `json:"url"`
	ReelID        *string `json:"reelId"`
	OwnerUsername *string `json:"ownerUsername"`
	Caption       *string `json:"caption"`
	PlayCount     *string `json:"playCount"`
	LikesCount    *string `json:"likesCount"`
	CommentsCount *string `json:"commentsCount"`
	SharesCount   *string `json:"sharesCount"`
	ReelDuration  *string `json:"reelDuration"`
	Music         *string `json:"music"`
	ReelDate      *string `json:"reelDate"`
	ReelDateTime  *string `json:"reelDateTime"`
	Img           *string `json:"img"`
}

// NewRecord returns a record with only the source URL set
func NewRecord(url string) Record {
	return Record{URL: &url}
}

func (r *Record) field(key string) **string {
	switch key {
	case "url":
		return &r.URL
	case "reelId":
		return &r.ReelID
	case "ownerUsername":
		return &r.OwnerUsername
	case "caption":
		return &r.Caption
	case "playCount":
		return &r.PlayCount
	case "likesCount":
		return &r.LikesCount
	case "commentsCount":
		return &r.CommentsCount
	case "sharesCount":
		return &r.SharesCount
	case "reelDuration":
		return &r.ReelDuration
	case "music":
		return &r.Music
	case "reelDate":
		return &r.ReelDate
	case "reelDateTime":
		return &r.ReelDateTime
	case "img":
		return &r.Img
	}
	return nil
}

// Get returns the value stored under key and whether it is set
func (r Record) Get(key string) (string, bool) {
	p := r.field(key)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// Row returns the field values in Columns order, with empty strings for nulls
func (r Record) Row() []string {
	row := make([]string, len(Columns))
	for i, key := range Columns {
		row[i], _ = r.Get(key)
	}
	return row
}

// SetIfAbsent stores value under key unless the field already holds a value.
// Empty values are ignored. It reports whether the field was written.
func (r *Record) SetIfAbsent(key, value string) bool {
	p := r.field(key)
	if p == nil || *p != nil || value == "" {
		return false
	}
	*p = &value
	return true
}

// Has reports whether the field under key is set
func (r Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// String renders a short description for logs
func (r Record) String() string {
	var b strings.Builder
	b.WriteString("reel")
	if id, ok := r.Get("reelId"); ok {
		b.WriteString(" " + id)
	}
	if owner, ok := r.Get("ownerUsername"); ok {
		b.WriteString(" by " + owner)
	}
	return b.String()
}
