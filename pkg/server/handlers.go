package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/meander/pkg/buildinfo"
	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/io"
	"github.com/matzehuels/meander/pkg/jobstore"
	"github.com/matzehuels/meander/pkg/tuning"
)

type tuneBody struct {
	Nets    []tuning.Request `json:"nets"`
	Refresh bool             `json:"refresh,omitempty"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleTune(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.decodeTune(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for i := range reqs {
		reqs[i].SetDefaults()
		if err := reqs[i].Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	job := jobstore.New(reqs, s.cfg.JobTTL)
	if err := s.store.Put(r.Context(), job); err != nil {
		s.writeError(w, r, err)
		return
	}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		s.run(r.Context(), job)
		writeJSON(w, http.StatusOK, job)
		return
	}

	accepted := *job
	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		s.run(context.Background(), job)
	}()

	w.Header().Set("Location", "/v1/jobs/"+job.ID)
	writeJSON(w, http.StatusAccepted, &accepted)
}

func (s *Server) decodeTune(w http.ResponseWriter, r *http.Request) ([]tuning.Request, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/toml" {
		return io.ReadTOML(body)
	}

	var in tuneBody
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if len(in.Nets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no nets to tune")
	}
	seen := make(map[string]bool, len(in.Nets))
	for i := range in.Nets {
		if seen[in.Nets[i].Net] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate net %q", in.Nets[i].Net)
		}
		seen[in.Nets[i].Net] = true
		in.Nets[i].Refresh = in.Refresh
	}
	return in.Nets, nil
}

// run tunes every net of job and stores the outcome.
func (s *Server) run(ctx context.Context, job *jobstore.Job) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	job.Status = jobstore.StatusRunning
	if err := s.store.Put(ctx, job); err != nil {
		s.logger.Warn("store job", "id", job.ID, "error", err)
	}

	results, err := s.runner.TuneAll(ctx, job.Requests)
	job.Finish(results, err)
	if err != nil {
		s.logger.Error("job failed", "id", job.ID, "error", err)
	}

	// The request context may be gone by now; the outcome must still land.
	if err := s.store.Put(context.WithoutCancel(ctx), job); err != nil {
		s.logger.Error("store job", "id", job.ID, "error", err)
	}
}

func (s *Server) loadJob(r *http.Request) (*jobstore.Job, error) {
	id := chi.URLParam(r, "id")
	job, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, jobstore.ErrNotFound) {
		return nil, errors.New(errors.ErrCodeJobNotFound, "job %s not found", id)
	}
	return job, err
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.loadJob(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	job, err := s.loadJob(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if job.Status != jobstore.StatusDone {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "job %s is %s", job.ID, job.Status))
		return
	}

	q := r.URL.Query()
	net := q.Get("net")
	if net == "" && len(job.Results) == 1 {
		net = job.Results[0].Request.Net
	}
	res := job.Result(net)
	if res == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "net %q not in job %s", net, job.ID))
		return
	}

	opts, err := renderOptions(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, hit, err := s.runner.Render(r.Context(), res, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", tuning.ContentTypes[opts.Format])
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func renderOptions(q url.Values) (tuning.RenderOptions, error) {
	flag := func(k string) bool {
		b, _ := strconv.ParseBool(q.Get(k))
		return b
	}

	opts := tuning.RenderOptions{
		Format:        q.Get("format"),
		ShowBaseline:  flag("baseline"),
		ShowObstacles: flag("obstacles"),
		UnitColors:    flag("colors"),
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", v)
		}
		opts.Scale = scale
	}
	opts.SetDefaults()
	return opts, opts.Validate()
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}
