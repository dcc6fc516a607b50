package feed

// ResolveAuthor turns an author field into an Author record. A bare name
// becomes Author{Name: name}; a record must carry a name. Email and URL are
// passed through unchecked.
func ResolveAuthor(value AuthorField) (Author, error) {
	switch v := value.(type) {
	case AuthorName:
		if v == "" {
			return Author{}, ErrMissingAuthorName
		}
		return Author{Name: string(v)}, nil
	case Author:
		if v.Name == "" {
			return Author{}, ErrMissingAuthorName
		}
		return Author{Name: v.Name, Email: v.Email, URL: v.URL}, nil
	case *Author:
		if v == nil {
			return Author{}, ErrMissingAuthorName
		}
		return ResolveAuthor(*v)
	default:
		return Author{}, ErrMissingAuthorName
	}
}
