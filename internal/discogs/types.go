// file: internal/discogs/types.go
// version: 1.0.0
// guid: 3a4b5c6d-7e8f-9a0b-1c2d-3e4f5a6b7c8d

package discogs

// collectionPage is one page of /users/{u}/collection/folders/0/releases.
type collectionPage struct {
	Pagination struct {
		Page  int `json:"page"`
		Pages int `json:"pages"`
		Items int `json:"items"`
	} `json:"pagination"`
	Releases []collectionRelease `json:"releases"`
}

type collectionRelease struct {
	ID               int64  `json:"id"`
	Rating           int    `json:"rating"`
	DateAdded        string `json:"date_added"`
	FolderID         int64  `json:"folder_id"`
	BasicInformation struct {
		ID       int64  `json:"id"`
		MasterID int64  `json:"master_id"`
		Title    string `json:"title"`
		Year     int    `json:"year"`
		Artists  []struct {
			Name string `json:"name"`
		} `json:"artists"`
		Labels []struct {
			Name  string `json:"name"`
			CatNo string `json:"catno"`
		} `json:"labels"`
		Formats []struct {
			Name         string   `json:"name"`
			Descriptions []string `json:"descriptions"`
		} `json:"formats"`
		Genres     []string `json:"genres"`
		Styles     []string `json:"styles"`
		CoverImage string   `json:"cover_image"`
	} `json:"basic_information"`
}

// Release is the full /releases/{id} payload, used for enrichment.
type Release struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Country string `json:"country"`
	Year    int    `json:"year"`
	Notes   string `json:"notes"`
	Genres  []string `json:"genres"`
	Styles  []string `json:"styles"`
	Images  []struct {
		Type string `json:"type"` // primary, secondary
		URI  string `json:"uri"`
	} `json:"images"`
	Tracklist []struct {
		Position string `json:"position"`
		Type     string `json:"type_"`
		Title    string `json:"title"`
		Duration string `json:"duration"`
		Artists  []struct {
			Name string `json:"name"`
		} `json:"artists"`
	} `json:"tracklist"`
}

type searchResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}
