package build

import "os"

// DestInfo names one concrete output: the template it was rendered from,
// its FID and content digest, and the resolved file path.
type DestInfo struct {
	Template *PathTemplate
	FID      string
	Digest   []byte
	Path     string
}

// newDestInfo renders entryName/digest through tmpl to produce the
// destination's FID and path.
func newDestInfo(tmpl *PathTemplate, entryName string, digest []byte) *DestInfo {
	fid := FID(entryName, digest)
	return &DestInfo{
		Template: tmpl,
		FID:      fid,
		Digest:   digest,
		Path:     tmpl.Render(fid),
	}
}

// Changed reports whether the destination does not yet exist. Content
// comparison is unnecessary: the digest is already baked into the
// filename via FID, so any existing file at Path is, by construction,
// for this exact content.
func (d *DestInfo) Changed() (bool, error) {
	_, err := os.Stat(d.Path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}
