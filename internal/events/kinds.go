package events

// Entity kind names used in change events, audit rows, and the image
// provenance log. Handlers publish these; the image tracker maps them to
// site section labels.
const (
	KindHomeBanner   = "HomeBanner"
	KindChurchInfo   = "ChurchInfo"
	KindHeadPastor   = "HeadPastor"
	KindServiceTime  = "ServiceTime"
	KindLeader       = "Leader"
	KindPhotoGallery = "PhotoGallery"
	KindSermon       = "Sermon"
	KindEvent        = "Event"
	KindBranch       = "Branch"
	KindGivingInfo   = "GivingInfo"
	KindGivingImage  = "GivingImage"
	KindContact      = "ContactMessage"
	KindTestimony    = "Testimony"
	KindBook         = "Book"
	KindMerchandise  = "Merchandise"
	KindUser         = "User"
)
