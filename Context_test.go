package bind

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ljpx/di"
	"github.com/ljpx/problem"
	"github.com/ljpx/test"
)

type ContextFixture struct {
	w *httptest.ResponseRecorder
	r *http.Request
	c di.Container
	x *Context
}

func SetupContextFixture() *ContextFixture {
	fixture := &ContextFixture{}
	fixture.w = httptest.NewRecorder()
	fixture.r = httptest.NewRequest(http.MethodGet, "/", nil)
	fixture.c = di.NewContainer()

	fixture.c.Register(di.Singleton, func(c di.Container) (testInterface, error) {
		return &testStruct{}, nil
	})

	fixture.x = NewContext(fixture.w, fixture.r, fixture.c, &Config{
		DebuggingEnabled:         true,
		ProblemDetailsTypePrefix: "https://testi.ng",
		JSONContentLengthLimit:   1 << 20,
	})

	return fixture
}

func TestContextWrapsTheResponseWriter(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act and Assert.
	test.That(t, fixture.x.Request()).IsEqualTo(fixture.r)
	test.That(t, fixture.x.ResponseWriter()).IsEqualTo(fixture.x.Response())
	test.That(t, fixture.x.Response().StatusCode()).IsEqualTo(http.StatusOK)
}

func TestContextDoesNotRewrapAMeasuredResponseWriter(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	mrw := NewMeasuredResponseWriter(fixture.w)

	// Act.
	ctx := NewContext(mrw, fixture.r, fixture.c, nil)

	// Assert.
	test.That(t, ctx.Response()).IsEqualTo(mrw)
}

func TestContextGeneratesCorrelationID(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act and Assert.
	test.That(t, fixture.x.GetCorrelationID().IsValid()).IsTrue()
}

func TestContextSendsCorrelationID(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	fixture.x.Respond(http.StatusOK)

	// Assert.
	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusOK)
	test.That(t, res.Header.Get("Correlation-ID")).IsEqualTo(fixture.x.correlationID.String())
}

func TestContextArtifactsAreSymmetric(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	fixture.x.SetArtifact("number", 5)
	number := fixture.x.GetArtifact("number").(int)

	// Assert.
	test.That(t, number).IsEqualTo(5)
	test.That(t, fixture.x.GetArtifact("missing")).IsNil()
}

func TestContextNotHaltedByDefault(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act and Assert.
	test.That(t, fixture.x.Halted()).IsFalse()
}

func TestContextRouteNameOutsideDispatchIsEmpty(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act and Assert.
	test.That(t, fixture.x.RouteName()).IsEqualTo("")
}

func TestContextResolveSuccess(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	var val testInterface
	success := fixture.x.Resolve(&val)

	// Assert.
	test.That(t, success).IsTrue()
	test.That(t, val.Greeting()).IsEqualTo("Hello, World!")
}

func TestContextResolveFailure(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	var val io.Writer
	success := fixture.x.Resolve(&val)

	// Assert.
	test.That(t, success).IsFalse()

	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusInternalServerError)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/http/internal-server-error")
}

func TestContextRespondWithJSONSuccess(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	fixture.x.RespondWithJSON(http.StatusOK, &testResponseModel{Message: "Hello, World!"})

	// Assert.
	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusOK)
	test.That(t, res.Header.Get("Content-Type")).IsEqualTo("application/json")
	test.That(t, res.Header.Get("Content-Length")).IsEqualTo("27")

	responseModel := &testResponseModel{}
	test.That(t, UnmarshalFromResponse(res, responseModel)).IsNil()
	test.That(t, responseModel.Message).IsEqualTo("Hello, World!")
}

func TestContextRespondWithJSONUnmarshallable(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	fixture.x.RespondWithJSON(http.StatusOK, &testUnmarshallableModel{})

	// Assert.
	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusInternalServerError)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/http/internal-server-error")
	test.That(t, problemDetails.Title).IsEqualTo("Internal Server Error")
	test.That(t, problemDetails.Error).IsNotEqualTo("")
}

func TestContextNotFound(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	fixture.x.NotFound("user", "42")

	// Assert.
	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusNotFound)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/http/not-found")
	test.That(t, problemDetails.Detail).IsEqualTo("The user '42' was not found.")
}

func TestContextUnauthorized(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	fixture.x.Unauthorized("A valid session is required.")

	// Assert.
	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusUnauthorized)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/http/unauthorized")
	test.That(t, problemDetails.Detail).IsEqualTo("A valid session is required.")
}

func TestContextTooManyRequests(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	fixture.x.TooManyRequests()

	// Assert.
	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusTooManyRequests)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/http/too-many-requests")
}

func TestContextAssertContentTypeSuccess(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	fixture.r.Header.Set("Content-Type", "image/png")

	// Act.
	passed := fixture.x.AssertContentType("image/PNG")

	// Assert.
	test.That(t, passed).IsTrue()
}

func TestContextAssertContentTypeFailure(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	fixture.r.Header.Set("Content-Type", "image/jpeg")

	// Act.
	passed := fixture.x.AssertContentType("image/PNG", "image/gif")

	// Assert.
	test.That(t, passed).IsFalse()

	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusUnsupportedMediaType)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/http/unsupported-media-type")
	test.That(t, problemDetails.Detail).IsEqualTo("The Content-Type 'image/jpeg' is not supported by this endpoint.")
}

func TestContextAssertContentLengthSuccess(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	fixture.r = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("Hello, World!"))
	fixture.x.r = fixture.r

	// Act.
	passed := fixture.x.AssertContentLength(13)

	// Assert.
	test.That(t, passed).IsTrue()
}

func TestContextAssertContentLengthFailureTooLarge(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	fixture.r = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("Hello, World!"))
	fixture.x.r = fixture.r

	// Act.
	passed := fixture.x.AssertContentLength(12)

	// Assert.
	test.That(t, passed).IsFalse()

	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusRequestEntityTooLarge)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/http/request-entity-too-large")
}

func TestContextAssertContentLengthFailureNotProvided(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()

	// Act.
	passed := fixture.x.AssertContentLength(12)

	// Assert.
	test.That(t, passed).IsFalse()

	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusLengthRequired)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/http/length-required")
}

func TestContextFromJSONContentTypeIncorrect(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	fixture.r = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"message":"Hello, World!"}`))
	fixture.r.Header.Set("Content-Type", "application/not-json")
	fixture.x.r = fixture.r

	// Act.
	reqModel := &testRequestModel{}
	passed := fixture.x.FromJSON(reqModel)

	// Assert.
	test.That(t, passed).IsFalse()

	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusUnsupportedMediaType)
}

func TestContextFromJSONUndeserializable(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	fixture.r = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"message":`))
	fixture.r.Header.Set("Content-Type", "application/json")
	fixture.x.r = fixture.r

	// Act.
	reqModel := &testRequestModel{}
	passed := fixture.x.FromJSON(reqModel)

	// Assert.
	test.That(t, passed).IsFalse()

	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusBadRequest)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/json/deserialization")
}

func TestContextFromJSONImpure(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	fixture.r = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"message":""}`))
	fixture.r.Header.Set("Content-Type", "application/json")
	fixture.x.r = fixture.r

	// Act.
	reqModel := &testRequestModel{}
	passed := fixture.x.FromJSON(reqModel)

	// Assert.
	test.That(t, passed).IsFalse()

	res := fixture.w.Result()
	test.That(t, res.StatusCode).IsEqualTo(http.StatusUnprocessableEntity)

	problemDetails := &problem.Details{}
	test.That(t, UnmarshalFromResponse(res, problemDetails)).IsNil()
	test.That(t, problemDetails.Type).IsEqualTo("https://testi.ng/http/unprocessable-entity")
}

func TestContextFromJSONSuccess(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	fixture.r = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"message":"Hello, World!"}`))
	fixture.r.Header.Set("Content-Type", "application/json")
	fixture.x.r = fixture.r

	// Act.
	reqModel := &testRequestModel{}
	passed := fixture.x.FromJSON(reqModel)

	// Assert.
	test.That(t, passed).IsTrue()
	test.That(t, reqModel.Message).IsEqualTo("Hello, World!")
}

func TestContextGetQueryParameter(t *testing.T) {
	// Arrange.
	fixture := SetupContextFixture()
	fixture.r = httptest.NewRequest(http.MethodGet, "/?val=world", nil)
	fixture.x.r = fixture.r

	// Act and Assert.
	test.That(t, fixture.x.GetQueryParameter("val")).IsEqualTo("world")
	test.That(t, fixture.x.GetQueryParameter("missing")).IsEqualTo("")
}

// -----------------------------------------------------------------------------

type testInterface interface {
	Greeting() string
}

type testStruct struct{}

var _ testInterface = &testStruct{}

func (*testStruct) Greeting() string {
	return "Hello, World!"
}

type testResponseModel struct {
	Message string `json:"message"`
}

type testUnmarshallableModel struct {
	Fn func() `json:"fn"`
}

type testRequestModel struct {
	Message string `json:"message"`
}

var _ Purifiable = &testRequestModel{}

func (m *testRequestModel) Purify() (string, error) {
	if m.Message == "" {
		return "message", errors.New("message must not be empty")
	}

	return "", nil
}
