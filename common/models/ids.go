package models

const (
	MemberResourceKind           ResourceKind = "member"
	SubwayLineResourceKind       ResourceKind = "subway_line"
	StationResourceKind          ResourceKind = "station"
	CategoryResourceKind         ResourceKind = "category"
	LostPostResourceKind         ResourceKind = "lost_post"
	FileResourceKind             ResourceKind = "file"
	LostPostFileResourceKind     ResourceKind = "lost_post_file"
	CommunityPostResourceKind    ResourceKind = "community_post"
	CommentResourceKind          ResourceKind = "comment"
	ReportResourceKind           ResourceKind = "report"
	ComplaintMessageResourceKind ResourceKind = "complaint_message"
)

type MemberID struct {
	ResourceID
}

func MemberIDFromResourceID(id ResourceID) MemberID {
	return MemberID{ResourceID: id}
}

type SubwayLineID struct {
	ResourceID
}

func SubwayLineIDFromResourceID(id ResourceID) SubwayLineID {
	return SubwayLineID{ResourceID: id}
}

type StationID struct {
	ResourceID
}

func StationIDFromResourceID(id ResourceID) StationID {
	return StationID{ResourceID: id}
}

type CategoryID struct {
	ResourceID
}

func CategoryIDFromResourceID(id ResourceID) CategoryID {
	return CategoryID{ResourceID: id}
}

type LostPostID struct {
	ResourceID
}

func LostPostIDFromResourceID(id ResourceID) LostPostID {
	return LostPostID{ResourceID: id}
}

type FileID struct {
	ResourceID
}

func FileIDFromResourceID(id ResourceID) FileID {
	return FileID{ResourceID: id}
}

type LostPostFileID struct {
	ResourceID
}

func LostPostFileIDFromResourceID(id ResourceID) LostPostFileID {
	return LostPostFileID{ResourceID: id}
}

type CommunityPostID struct {
	ResourceID
}

func CommunityPostIDFromResourceID(id ResourceID) CommunityPostID {
	return CommunityPostID{ResourceID: id}
}

type CommentID struct {
	ResourceID
}

func CommentIDFromResourceID(id ResourceID) CommentID {
	return CommentID{ResourceID: id}
}

type ReportID struct {
	ResourceID
}

func ReportIDFromResourceID(id ResourceID) ReportID {
	return ReportID{ResourceID: id}
}

type ComplaintMessageID struct {
	ResourceID
}

func ComplaintMessageIDFromResourceID(id ResourceID) ComplaintMessageID {
	return ComplaintMessageID{ResourceID: id}
}
