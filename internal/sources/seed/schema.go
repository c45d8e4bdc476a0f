package seed

import "github.com/MrSnakeDoc/bookmarks/internal/domain"

// Entry is one bookmark in the seed file. Fields are pointers so an absent
// key stays distinguishable from an empty one; rating is kept as its literal
// text and parsed by the domain validation like any client input.
//
//	- title: google
//	  url: https://google.com
//	  description: search engine
//	  rating: 2
type Entry struct {
	Title       *string `yaml:"title"`
	URL         *string `yaml:"url"`
	Description *string `yaml:"description"`
	Rating      *string `yaml:"rating"`
}

// File is the root structure of the seed YAML.
type File []Entry

// Fields maps the entry to the input accepted by the bookmark service.
func (e Entry) Fields() domain.Fields {
	return domain.Fields{
		Title:       e.Title,
		URL:         e.URL,
		Description: e.Description,
		Rating:      e.Rating,
	}
}
