package v1

import (
	"net/http"
	"net/url"

	"github.com/OuterCloud/family-account-book/pkg/httperrors"
	"github.com/OuterCloud/family-account-book/pkg/httputil"
	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/gin-gonic/gin"
)

type PersonLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/persons/6d2b5a1e-4c49-4a0e-9d3c-1c5a0a2e7f11"` // The person itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?person=Alice"`          // The transactions of the person
}

// Person is the representation of a Person in API v1.
type Person struct {
	models.Person
	Links PersonLinks `json:"links"`
}

func newPerson(c *gin.Context, model models.Person) Person {
	base := c.GetString(string(models.ContextURL))

	return Person{
		Person: model,
		Links: PersonLinks{
			Self:         base + "/v1/persons/" + model.ID.String(),
			Transactions: base + "/v1/transactions?person=" + url.QueryEscape(model.Name),
		},
	}
}

type PersonResponse struct {
	Data  *Person `json:"data"`                                                   // Data for the person
	Error *string `json:"error,omitempty" example:"the person name must be unique"` // The error, if any occurred
}

type PersonListResponse struct {
	Data  []Person `json:"data"`                                                          // List of persons
	Error *string  `json:"error,omitempty" example:"there is a problem with the database"` // The error, if any occurred
}

// RegisterPersonRoutes registers the routes for persons with
// the RouterGroup that is passed.
func (co Controller) RegisterPersonRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPersonList)
		r.GET("", co.GetPersons)
		r.POST("", co.CreatePerson)
	}

	// Person with ID
	{
		r.OPTIONS("/:id", co.OptionsPersonDetail)
		r.GET("/:id", co.GetPerson)
		r.PATCH("/:id", co.UpdatePerson)
		r.DELETE("/:id", co.DeletePerson)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Persons
// @Success		204
// @Router			/v1/persons [options]
func OptionsPersonList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Persons
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/persons/{id} [options]
func (co Controller) OptionsPersonDetail(c *gin.Context) {
	if _, ok := co.getPerson(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getPerson returns the person for the ID in the path. If the boolean is
// false, the error response has already been written.
func (co Controller) getPerson(c *gin.Context) (models.Person, bool) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return models.Person{}, false
	}

	person, ok, err := co.Ledger.GetPerson(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return models.Person{}, false
	}

	if !ok {
		abort(c, httperrors.ErrNotFound)
		return models.Person{}, false
	}

	return person, true
}

// @Summary		Get persons
// @Description	Returns all persons ordered by name
// @Tags			Persons
// @Produce		json
// @Success		200	{object}	PersonListResponse
// @Failure		500	{object}	PersonListResponse
// @Router			/v1/persons [get]
func (co Controller) GetPersons(c *gin.Context) {
	persons, err := co.Ledger.ListPersons(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]Person, 0, len(persons))
	for _, person := range persons {
		data = append(data, newPerson(c, person))
	}

	c.JSON(http.StatusOK, PersonListResponse{Data: data})
}

// @Summary		Create person
// @Description	Creates a new person
// @Tags			Persons
// @Accept			json
// @Produce		json
// @Success		201		{object}	PersonResponse
// @Failure		400		{object}	PersonResponse
// @Failure		500		{object}	PersonResponse
// @Param			person	body		ledger.PersonCreate	true	"Person"
// @Router			/v1/persons [post]
func (co Controller) CreatePerson(c *gin.Context) {
	var create ledger.PersonCreate
	if err := httputil.BindData(c, &create); err != nil {
		abort(c, err)
		return
	}

	person, err := co.Ledger.CreatePerson(c.Request.Context(), create)
	if err != nil {
		abort(c, err)
		return
	}

	data := newPerson(c, person)
	c.JSON(http.StatusCreated, PersonResponse{Data: &data})
}

// @Summary		Get person
// @Description	Returns a specific person
// @Tags			Persons
// @Produce		json
// @Success		200	{object}	PersonResponse
// @Failure		400	{object}	PersonResponse
// @Failure		404	{object}	PersonResponse
// @Failure		500	{object}	PersonResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/persons/{id} [get]
func (co Controller) GetPerson(c *gin.Context) {
	person, ok := co.getPerson(c)
	if !ok {
		return
	}

	data := newPerson(c, person)
	c.JSON(http.StatusOK, PersonResponse{Data: &data})
}

// @Summary		Update person
// @Description	Updates an existing person. Only values to be updated need to be specified.
// @Tags			Persons
// @Accept			json
// @Produce		json
// @Success		200		{object}	PersonResponse
// @Failure		400		{object}	PersonResponse
// @Failure		404		{object}	PersonResponse
// @Failure		500		{object}	PersonResponse
// @Param			id		path		string				true	"ID formatted as string"
// @Param			person	body		ledger.PersonPatch	true	"Person"
// @Router			/v1/persons/{id} [patch]
func (co Controller) UpdatePerson(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	var patch ledger.PersonPatch
	if err := httputil.BindData(c, &patch); err != nil {
		abort(c, err)
		return
	}

	person, ok, err := co.Ledger.UpdatePerson(c.Request.Context(), id, patch)
	if err != nil {
		abort(c, err)
		return
	}

	if !ok {
		abort(c, httperrors.ErrNotFound)
		return
	}

	data := newPerson(c, person)
	c.JSON(http.StatusOK, PersonResponse{Data: &data})
}

// @Summary		Delete person
// @Description	Deletes a person. Persons referenced by transactions cannot be deleted.
// @Tags			Persons
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		409	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/persons/{id} [delete]
func (co Controller) DeletePerson(c *gin.Context) {
	person, ok := co.getPerson(c)
	if !ok {
		return
	}

	deleted, err := co.Ledger.DeletePerson(c.Request.Context(), person.ID)
	if err != nil {
		abort(c, err)
		return
	}

	if !deleted {
		abort(c, httperrors.ErrInUse)
		return
	}

	c.Status(http.StatusNoContent)
}
