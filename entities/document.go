package entities

// DocumentRole names one of the three inputs of a verification run.
type DocumentRole string

const (
	SelfieDocument       DocumentRole = "selfie"
	IDDocument           DocumentRole = "id"
	AddressProofDocument DocumentRole = "addressProof"
)

// DocumentRoles lists the roles in the order they are loaded.
var DocumentRoles = []DocumentRole{SelfieDocument, IDDocument, AddressProofDocument}

func (role DocumentRole) String() string {
	return string(role)
}

func (role DocumentRole) IsValid() bool {
	switch role {
	case SelfieDocument, IDDocument, AddressProofDocument:
		return true
	}
	return false
}

// DocumentBuffer holds the raw bytes of an uploaded document. It lives only
// for the duration of a run.
type DocumentBuffer struct {
	Role DocumentRole
	Data []byte
}

func (doc *DocumentBuffer) IsEmpty() bool {
	return doc == nil || len(doc.Data) == 0
}

// Wipe zeroes the underlying bytes.
func (doc *DocumentBuffer) Wipe() {
	if doc == nil {
		return
	}
	wipeBytes(doc.Data)
	doc.Data = nil
}

// DocumentSet carries the three documents of a run.
type DocumentSet struct {
	Selfie       *DocumentBuffer
	ID           *DocumentBuffer
	AddressProof *DocumentBuffer
}

func (set *DocumentSet) Get(role DocumentRole) *DocumentBuffer {
	switch role {
	case SelfieDocument:
		return set.Selfie
	case IDDocument:
		return set.ID
	case AddressProofDocument:
		return set.AddressProof
	}
	return nil
}

func (set *DocumentSet) Set(doc *DocumentBuffer) {
	switch doc.Role {
	case SelfieDocument:
		set.Selfie = doc
	case IDDocument:
		set.ID = doc
	case AddressProofDocument:
		set.AddressProof = doc
	}
}

func (set *DocumentSet) Wipe() {
	if set == nil {
		return
	}
	set.Selfie.Wipe()
	set.ID.Wipe()
	set.AddressProof.Wipe()
}

func wipeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

func wipeFloats(data []float32) {
	for i := range data {
		data[i] = 0
	}
}
