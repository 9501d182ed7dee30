/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

// HeaderKeyword is the keyword of the header dictionary.
const HeaderKeyword = "FoamFile"

// Header is the metadata dictionary written at the top of every dictionary file.
// All fields are opaque strings. They are neither validated nor interpreted.
type Header struct {
	Version  string
	Format   string
	Class    string
	Location string
	Object   string
}

// NewDocument constructs a dictionary that contains only the header.
func NewDocument(h Header) *Dictionary {
	d := NewDictionary()
	d.SetHeader(h)
	return d
}

// Header returns the header of the dictionary if it has one.
// Fields that are absent in the header dictionary are left empty.
func (d *Dictionary) Header() (Header, bool) {
	e, ok := d.Get(HeaderKeyword)
	if !ok || e.Kind != EntryDict {
		return Header{}, false
	}
	hd := e.Value.Dict
	return Header{
		Version:  headerField(hd, "version"),
		Format:   headerField(hd, "format"),
		Class:    headerField(hd, "class"),
		Location: headerField(hd, "location"),
		Object:   headerField(hd, "object"),
	}, true
}

// SetHeader replaces the header of the dictionary, or inserts it as the first entry.
// Empty fields are omitted. Location is written as a quoted string, the others as words.
func (d *Dictionary) SetHeader(h Header) {
	hd := NewDictionary()
	addHeaderField(hd, "version", h.Version, false)
	addHeaderField(hd, "format", h.Format, false)
	addHeaderField(hd, "class", h.Class, false)
	addHeaderField(hd, "location", h.Location, true)
	addHeaderField(hd, "object", h.Object, false)
	e := NewDict(Key(HeaderKeyword), hd)

	if idx := d.lastIndex(Key(HeaderKeyword)); idx != -1 {
		d.Entries[idx] = e
		return
	}
	d.Entries = append([]*Entry{e}, d.Entries...)
}

func headerField(hd *Dictionary, name string) string {
	e, ok := hd.Get(name)
	if !ok || e.Kind != EntryPrimitive || len(e.Value.Tokens) != 1 {
		return ""
	}
	return e.Value.Tokens[0].Text
}

func addHeaderField(hd *Dictionary, name, value string, quoted bool) {
	if value == "" {
		return
	}
	tok := Word(value)
	switch {
	case quoted:
		tok = Quoted(value)
	case looksLikeNumber(value):
		tok = Number(value)
	}
	hd.Add(NewPrimitive(Key(name), tok))
}
