// file: internal/clz/parser.go
// version: 1.0.0
// guid: 9e0f1a2b-3c4d-5e6f-7a8b-9c0d1e2f3a4b

// Package clz parses Collectorz Music (CLZ) XML exports into albums.
//
// CLZ exports are ragged: the same field may appear as bare character data,
// as a displayname attribute, or as a nested displayname element, depending
// on the exporting app version. The node types here absorb all three shapes.
package clz

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/normalize"
)

// ErrNoMusicData means the document parsed as XML but does not contain the
// collectorz music list.
var ErrNoMusicData = errors.New("no music entries found in CLZ export")

// textNode reads a CLZ value in any of its spellings.
type textNode struct {
	DisplayAttr  string `xml:"displayname,attr"`
	DisplayChild string `xml:"displayname"`
	Value        string `xml:",chardata"`
}

// Text prefers the display name over raw character data.
func (n textNode) Text() string {
	if s := strings.TrimSpace(n.DisplayChild); s != "" {
		return s
	}
	if s := strings.TrimSpace(n.DisplayAttr); s != "" {
		return s
	}
	return strings.TrimSpace(n.Value)
}

// boolNode reads CLZ booleans, which appear as a boolvalue attribute or as
// yes/no text.
type boolNode struct {
	BoolAttr string `xml:"boolvalue,attr"`
	Value    string `xml:",chardata"`
}

func (n boolNode) Bool() bool {
	for _, s := range []string{n.BoolAttr, n.Value} {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "yes", "true":
			return true
		}
	}
	return false
}

// nameList collects every child element's display name, whatever the child
// elements are called. Credit blocks nest people under varying tag names.
type nameList struct {
	Names []textNode `xml:",any"`
}

func (n nameList) All() []string {
	out := make([]string, 0, len(n.Names))
	for _, name := range n.Names {
		if s := name.Text(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (n nameList) First() string {
	for _, name := range n.Names {
		if s := name.Text(); s != "" {
			return s
		}
	}
	return ""
}

func (n nameList) Credits() []models.Credit {
	names := n.All()
	if len(names) == 0 {
		return nil
	}
	credits := make([]models.Credit, 0, len(names))
	for _, name := range names {
		credits = append(credits, models.Credit{Name: name})
	}
	return credits
}

type dateNode struct {
	TimestampAttr  string `xml:"timestamp,attr"`
	TimestampChild string `xml:"timestamp"`
}

func (n dateNode) Time() *time.Time {
	s := strings.TrimSpace(n.TimestampChild)
	if s == "" {
		s = strings.TrimSpace(n.TimestampAttr)
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ts <= 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

type trackNode struct {
	Position textNode `xml:"position"`
	Title    textNode `xml:"title"`
	Length   textNode `xml:"length"` // seconds
	Artists  struct {
		Artist []textNode `xml:"artist"`
	} `xml:"artists"`
}

type discNode struct {
	Tracks struct {
		Track []trackNode `xml:"track"`
	} `xml:"tracks"`
}

type musicNode struct {
	Title   textNode `xml:"title"`
	Artists struct {
		Artist []textNode `xml:"artist"`
	} `xml:"artists"`
	Format      textNode `xml:"format"`
	Label       textNode `xml:"label"` // comma-separated
	ReleaseDate struct {
		Year textNode `xml:"year"`
	} `xml:"releasedate"`
	UPC              textNode `xml:"upc"`
	LabelNumber      textNode `xml:"labelnumber"`
	Country          textNode `xml:"country"`
	Notes            textNode `xml:"notes"`
	StorageDevice    textNode `xml:"storagedevice"`
	Slot             textNode `xml:"slot"`
	Index            textNode `xml:"index"`
	MyRating         textNode `xml:"myrating"`
	MediaCondition   textNode `xml:"mediacondition"`
	Condition        textNode `xml:"condition"`
	VinylWeight      textNode `xml:"vinylweight"`
	RPM              textNode `xml:"rpm"`
	Packaging        textNode `xml:"packaging"`
	Sound            textNode `xml:"sound"`
	SparsCode        textNode `xml:"sparscode"`
	CollectionStatus textNode `xml:"collectionstatus"`
	IsLive           boolNode `xml:"islive"`
	Genres           struct {
		Genre []textNode `xml:"genre"`
	} `xml:"genres"`
	Tags struct {
		Tag []textNode `xml:"tag"`
	} `xml:"tags"`
	Musicians   nameList `xml:"musicians"`
	Producers   nameList `xml:"producers"`
	Engineers   nameList `xml:"engineers"`
	Songwriters nameList `xml:"songwriters"`
	Composers   nameList `xml:"composers"`
	Conductors  nameList `xml:"conductors"`
	Orchestras  nameList `xml:"orchestras"`
	Choruses    nameList `xml:"choruses"`
	Studios     nameList `xml:"studios"`
	AddedDate   dateNode `xml:"addeddate"`
	ModifiedDt  dateNode `xml:"modifieddate"`
	BPAlbumID   textNode `xml:"bpalbumid"`
	Hash        textNode `xml:"hash"`
	Discs       struct {
		Disc []discNode `xml:"disc"`
	} `xml:"discs"`
}

type clzFile struct {
	XMLName xml.Name `xml:"collectorz"`
	Data    struct {
		MusicInfo struct {
			MusicList struct {
				Music []musicNode `xml:"music"`
			} `xml:"musiclist"`
		} `xml:"musicinfo"`
	} `xml:"data"`
}

// Parse decodes a CLZ XML export into albums. Individual missing fields are
// tolerated; a document without the collectorz music list is an error.
func Parse(r io.Reader) ([]models.Album, error) {
	var doc clzFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding CLZ XML: %w", err)
	}
	entries := doc.Data.MusicInfo.MusicList.Music
	if len(entries) == 0 {
		return nil, ErrNoMusicData
	}

	albums := make([]models.Album, 0, len(entries))
	for i := range entries {
		albums = append(albums, convert(&entries[i]))
	}
	return albums, nil
}

func convert(m *musicNode) models.Album {
	tracks, discMeta := flattenDiscs(m.Discs.Disc)

	album := models.Album{
		Artist:  joinArtists(m.Artists.Artist),
		Title:   textOr(m.Title, "Unknown Album"),
		Year:    m.ReleaseDate.Year.Text(),
		Format:  textOr(m.Format, "Unknown"),
		Labels:  splitLabels(m.Label.Text()),
		CatNo:   m.LabelNumber.Text(),
		Barcode: m.UPC.Text(),
		Country: m.Country.Text(),

		Tracks:          tracks,
		DiscMetadata:    discMeta,
		Discs:           len(m.Discs.Disc),
		Musicians:       m.Musicians.Credits(),
		Producers:       m.Producers.Credits(),
		Engineers:       m.Engineers.Credits(),
		Songwriters:     m.Songwriters.Credits(),
		Packaging:       m.Packaging.Text(),
		Sound:           m.Sound.Text(),
		SparsCode:       m.SparsCode.Text(),
		RPM:             m.RPM.Text(),
		VinylWeight:     m.VinylWeight.Text(),
		Notes:           m.Notes.Text(),
		Studio:          m.Studios.First(),
		MediaCondition:  m.MediaCondition.Text(),
		SleeveCondition: m.Condition.Text(),
		Composer:        m.Composers.First(),
		Conductor:       m.Conductors.First(),
		Orchestra:       m.Orchestras.First(),
		Chorus:          m.Choruses.First(),
		IsLive:          m.IsLive.Bool(),

		CollectionStatus: m.CollectionStatus.Text(),
		Location:         joinLocation(m.StorageDevice.Text(), m.Slot.Text()),
		CustomTags:       textList(m.Tags.Tag),
		DateAdded:        m.AddedDate.Time(),
		ModifiedDate:     m.ModifiedDt.Time(),

		ClzAlbumID: m.BPAlbumID.Text(),
		ClzHash:    m.Hash.Text(),
		ClzGenres:  textList(m.Genres.Genre),
	}
	if rating, err := strconv.Atoi(m.MyRating.Text()); err == nil && rating > 0 {
		album.MyRating = rating
	}
	if idx, err := strconv.Atoi(m.Index.Text()); err == nil && idx > 0 {
		album.IndexNumber = idx
	}
	return album
}

// flattenDiscs produces the track list (disc numbers stamped in) and the
// per-disc summary side by side.
func flattenDiscs(discs []discNode) ([]models.Track, []models.DiscInfo) {
	var tracks []models.Track
	var meta []models.DiscInfo
	for i, disc := range discs {
		discNumber := i + 1
		for _, t := range disc.Tracks.Track {
			track := models.Track{
				Position:   t.Position.Text(),
				Title:      textOr(t.Title, "Unknown Track"),
				Artist:     joinTrackArtists(t.Artists.Artist),
				DiscNumber: discNumber,
			}
			if secs, err := strconv.Atoi(t.Length.Text()); err == nil && secs > 0 {
				track.Duration = normalize.FormatDuration(secs)
			}
			tracks = append(tracks, track)
		}
		meta = append(meta, models.DiscInfo{
			DiscNumber: discNumber,
			TrackCount: len(disc.Tracks.Track),
		})
	}
	return tracks, meta
}

func joinArtists(artists []textNode) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if s := a.Text(); s != "" {
			names = append(names, s)
		}
	}
	if len(names) == 0 {
		return "Unknown Artist"
	}
	return strings.Join(names, ", ")
}

func joinTrackArtists(artists []textNode) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if s := a.Text(); s != "" {
			names = append(names, s)
		}
	}
	return strings.Join(names, ", ")
}

// splitLabels breaks the comma-separated CLZ label string into a list.
func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func joinLocation(storage, slot string) string {
	return strings.TrimSpace(strings.TrimSpace(storage) + " " + strings.TrimSpace(slot))
}

func textList(nodes []textNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if s := n.Text(); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func textOr(n textNode, fallback string) string {
	if s := n.Text(); s != "" {
		return s
	}
	return fallback
}
