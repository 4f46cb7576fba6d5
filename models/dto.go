package models

type IssueTokenRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"omitempty,max=255"`
}

type StoreTranslationRequest struct {
	Locale string   `json:"locale" validate:"required"`
	Key    string   `json:"key" validate:"required,max=255"`
	Value  string   `json:"value" validate:"required"`
	Tags   []string `json:"tags"`
}

// UpdateTranslationRequest uses pointers so omitted fields keep their
// stored values.
type UpdateTranslationRequest struct {
	Locale *string   `json:"locale" validate:"omitempty"`
	Key    *string   `json:"key" validate:"omitempty,max=255"`
	Value  *string   `json:"value" validate:"omitempty"`
	Tags   *[]string `json:"tags"`
}

type SearchTranslationParams struct {
	Locale  string `form:"locale"`
	Key     string `form:"key"`
	Value   string `form:"value"`
	Tags    string `form:"tags"`
	PerPage int    `form:"per_page,default=15" validate:"min=1,max=100"`
	Page    int    `form:"page,default=1" validate:"min=1"`
}

type CreateTagRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// TranslationDTO is the validated payload handed to the translation
// service and repository.
type TranslationDTO struct {
	LocaleCode string
	Key        string
	Value      string
	Tags       []string
}

// TranslationPage is one cached page of search results.
type TranslationPage struct {
	Items []Translation `json:"items"`
	Total int64         `json:"total"`
}

// TranslationFilter carries normalized search parameters. Its field set is
// also what the search cache key is derived from.
type TranslationFilter struct {
	LocaleCode string   `json:"locale"`
	Key        string   `json:"key"`
	Value      string   `json:"value"`
	Tags       []string `json:"tags"`
	PerPage    int      `json:"per_page"`
	Page       int      `json:"page"`
}
