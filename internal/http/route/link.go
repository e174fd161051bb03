package route

import "strings"

// Link is a hypermedia link of a representation.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Linker builds links against the route table.
// BaseURL, when set, is prepended to every href, e.g. "https://api.example.com".
type Linker struct {
	BaseURL string
}

// NewLinker returns a Linker for the given base URL.
func NewLinker(baseURL string) Linker {
	return Linker{BaseURL: strings.TrimRight(baseURL, "/")}
}

// Link resolves the named route into a link with the given relation.
func (l Linker) Link(rel string, name Name, params Params) (Link, error) {
	path, err := Expand(name, params)
	if err != nil {
		return Link{}, err
	}
	return Link{Rel: rel, Href: l.BaseURL + path}, nil
}

// ProductLinks returns the self and collection links of a single product.
func (l Linker) ProductLinks(id string) ([]Link, error) {
	self, err := l.Link(RelSelf, ProductsGet, Params{ParamID: id})
	if err != nil {
		return nil, err
	}
	products, err := l.Link(RelProducts, ProductsList, nil)
	if err != nil {
		return nil, err
	}
	return []Link{self, products}, nil
}

// CollectionLinks returns the self link of the product collection.
func (l Linker) CollectionLinks() ([]Link, error) {
	self, err := l.Link(RelSelf, ProductsList, nil)
	if err != nil {
		return nil, err
	}
	return []Link{self}, nil
}
