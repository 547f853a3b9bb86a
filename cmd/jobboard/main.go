package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/jobboard/internal/client"
	"github.com/fr4nk3nst1ner/jobboard/internal/config"
	"github.com/fr4nk3nst1ner/jobboard/internal/filters"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/server"
	"github.com/fr4nk3nst1ner/jobboard/internal/session"
	"github.com/fr4nk3nst1ner/jobboard/internal/taxonomy"
	"github.com/fr4nk3nst1ner/jobboard/internal/ui"
)

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\n📋 JobBoard Usage Examples 📋")
	fmt.Println("\n1. Search Python backend jobs that mention Django, paying at least 50k:")
	fmt.Println("   jobboard -language Python -category Backend -skills Django -salary-min 50000")

	fmt.Println("\n2. Search senior and mid-level jobs by keyword and show a table:")
	fmt.Println("   jobboard -search \"site reliability\" -seniority Mid,Senior -table")

	fmt.Println("\n3. Show the filter taxonomy (languages, categories, skills, counts):")
	fmt.Println("   jobboard -taxonomy")

	fmt.Println("\n4. Sign in, then list the jobs your company posted:")
	fmt.Println("   jobboard -login hr@acme.io -password secret")
	fmt.Println("   jobboard -company-jobs me")

	fmt.Println("\n5. Review the moderation queue and approve two jobs (admin):")
	fmt.Println("   jobboard -pending")
	fmt.Println("   jobboard -approve 65f0c1,65f0c2")

	fmt.Println("\n6. Serve the local filter API on port 8090:")
	fmt.Println("   jobboard -serve -port 8090")

	fmt.Println("\n7. Register a company, then post and edit a job from JSON files:")
	fmt.Println("   jobboard -register company -payload company.json")
	fmt.Println("   jobboard -post-job posting.json")
	fmt.Println("   jobboard -edit-job 65f0c1 -posting posting.json")

	fmt.Println("\n8. Update your profile:")
	fmt.Println("   jobboard -profile -payload profile.json")

	fmt.Println("\nConfiguration is read from .env and JOBBOARD_* environment variables.")
	os.Exit(0)
}

func main() {
	cfg := config.Load()

	// Search flags
	search := flag.String("search", "", "Free-text search term")
	language := flag.String("language", "", "Programming language filter (e.g. Python)")
	category := flag.String("category", "", "Category filter (Frontend, Backend, DevOps)")
	seniority := flag.String("seniority", "", "Comma-separated seniority levels (Intern, Junior, Mid, Senior)")
	skills := flag.String("skills", "", "Comma-separated skills; only skills available for the language and category are kept")
	salaryMin := flag.String("salary-min", "", "Minimum salary")
	salaryMax := flag.String("salary-max", "", "Maximum salary")
	table := flag.Bool("table", false, "Show results in table format")
	showTaxonomy := flag.Bool("taxonomy", false, "Show the filter taxonomy and exit")

	// Account and moderation flags
	companyJobs := flag.String("company-jobs", "", "List jobs posted by a company id (\"me\" for the signed-in company)")
	deleteJob := flag.String("delete-job", "", "Delete a job by id")
	pending := flag.Bool("pending", false, "List jobs awaiting moderation (admin)")
	approve := flag.String("approve", "", "Comma-separated job ids to approve (admin)")
	reject := flag.String("reject", "", "Comma-separated job ids to reject (admin)")
	applications := flag.Bool("applications", false, "List the signed-in user's applications")
	login := flag.String("login", "", "Sign in with this email")
	password := flag.String("password", "", "Password for -login")
	logout := flag.Bool("logout", false, "Forget the stored session")
	register := flag.String("register", "", "Create an account of this kind (user or company) from -payload")
	payload := flag.String("payload", "", "JSON file with account fields for -register or -profile")
	profile := flag.Bool("profile", false, "Update the signed-in account's profile from -payload")

	// Job posting flags (company accounts)
	postJob := flag.String("post-job", "", "Create a job from a JSON posting file")
	editJob := flag.String("edit-job", "", "Edit a job by id using -posting")
	posting := flag.String("posting", "", "JSON posting file for -edit-job")

	// Local API flags
	serve := flag.Bool("serve", false, "Run the local filter API")
	port := flag.Int("port", cfg.Port, "Port for -serve")

	apiURL := flag.String("api", cfg.APIBaseURL, "Job-board API base URL")
	proxyURL := flag.String("proxy", cfg.ProxyURL, "Proxy URL to use")
	debug := flag.Bool("debug", false, "Enable debug mode")
	examples := flag.Bool("examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	ui.PrintBanner(*silence || *noBanner)

	if *examples {
		printExamples()
		return
	}

	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		log.Fatalf("Error loading taxonomy: %v", err)
	}

	if *showTaxonomy {
		if err := ui.RenderTable(ui.TaxonomyTable(tax)); err != nil {
			log.Fatalf("Error rendering taxonomy: %v", err)
		}
		return
	}

	if *logout {
		if err := session.Clear(cfg.SessionPath); err != nil {
			log.Fatalf("Error clearing session: %v", err)
		}
		pterm.Success.Println("Signed out")
		return
	}

	sess, err := session.Load(cfg.SessionPath)
	if err != nil {
		log.Printf("Ignoring stored session: %v", err)
		sess = &session.Session{}
	}

	api := client.New(*apiURL, client.CreateHTTPClient(*proxyURL, cfg.Insecure, cfg.Timeout), sess)
	api.Debug = *debug

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *login != "":
		if *password == "" {
			log.Fatal("-password is required with -login")
		}
		s, err := api.Login(ctx, *login, *password)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		if err := s.Save(cfg.SessionPath); err != nil {
			log.Fatalf("Error saving session: %v", err)
		}
		pterm.Success.Printfln("Signed in as %s (%s)", *login, s.Role)

	case *register != "":
		if *payload == "" {
			log.Fatal("-payload is required with -register")
		}
		body, err := readPayload(*payload)
		if err != nil {
			log.Fatalf("Error reading payload: %v", err)
		}
		if err := api.Register(ctx, *register, body); err != nil {
			log.Fatalf("Registration failed: %v", err)
		}
		pterm.Success.Printfln("Registered %s account; sign in with -login", *register)

	case *profile:
		requireRole(sess, "user or company", (*session.Session).IsUser, (*session.Session).IsCompany)
		if *payload == "" {
			log.Fatal("-payload is required with -profile")
		}
		body, err := readPayload(*payload)
		if err != nil {
			log.Fatalf("Error reading payload: %v", err)
		}
		if err := api.UpdateProfile(ctx, sess.Role, sess.AccountID(), body); err != nil {
			log.Fatalf("Error updating profile: %v", err)
		}
		pterm.Success.Println("Profile updated")

	case *postJob != "":
		requireRole(sess, "company", (*session.Session).IsCompany)
		p, err := readPosting(*postJob)
		if err != nil {
			log.Fatalf("Error reading posting: %v", err)
		}
		job, err := api.CreateJob(ctx, p)
		if err != nil {
			log.Fatalf("Error posting job: %v", err)
		}
		pterm.Success.Printfln("Posted job %s (awaiting moderation)", job.ID)
		printJobs([]models.Job{job}, *table)

	case *editJob != "":
		requireRole(sess, "company", (*session.Session).IsCompany)
		if *posting == "" {
			log.Fatal("-posting is required with -edit-job")
		}
		p, err := readPosting(*posting)
		if err != nil {
			log.Fatalf("Error reading posting: %v", err)
		}
		var previous models.Job
		if jobs, err := api.CompanyJobs(ctx, sess.AccountID()); err != nil {
			log.Printf("Could not load current version of %s: %v", *editJob, err)
		} else if j, ok := findJob(jobs, *editJob); ok {
			previous = j
		}
		job, err := api.UpdateJob(ctx, *editJob, p, previous)
		if err != nil {
			log.Fatalf("Error editing job: %v", err)
		}
		pterm.Success.Printfln("Updated job %s", job.ID)
		printJobs([]models.Job{job}, *table)

	case *serve:
		srv := server.New(tax, api, server.Options{Username: cfg.WebUsername, Password: cfg.WebPassword})
		if err := srv.Run(*port, cfg.WebUsername != "" && cfg.WebPassword != ""); err != nil {
			log.Fatalf("Server failed: %v", err)
		}

	case *pending:
		requireRole(sess, "admin", (*session.Session).IsAdmin)
		jobs, err := api.PendingJobs(ctx)
		if err != nil {
			log.Fatalf("Error fetching pending jobs: %v", err)
		}
		if len(jobs) == 0 {
			pterm.Info.Println("No pending jobs")
			return
		}
		printJobs(jobs, *table)

	case *approve != "" || *reject != "":
		requireRole(sess, "admin", (*session.Session).IsAdmin)
		failed := 0
		failed += moderate(ctx, api, splitIDs(*approve), client.Approve)
		failed += moderate(ctx, api, splitIDs(*reject), client.Reject)
		if failed > 0 {
			os.Exit(1)
		}

	case *deleteJob != "":
		requireRole(sess, "company or admin", (*session.Session).IsCompany, (*session.Session).IsAdmin)
		if err := api.DeleteJob(ctx, *deleteJob); err != nil {
			log.Fatalf("Error deleting job: %v", err)
		}
		pterm.Success.Printfln("Deleted job %s", *deleteJob)

	case *companyJobs != "":
		id := *companyJobs
		if id == "me" {
			requireRole(sess, "company", (*session.Session).IsCompany)
			id = sess.AccountID()
		}
		jobs, err := api.CompanyJobs(ctx, id)
		if err != nil {
			log.Fatalf("Error fetching company jobs: %v", err)
		}
		fmt.Printf("\nFound %d jobs\n\n", len(jobs))
		printJobs(jobs, *table)

	case *applications:
		requireRole(sess, "user", (*session.Session).IsUser)
		apps, err := api.Applications(ctx, sess.AccountID())
		if err != nil {
			log.Fatalf("Error fetching applications: %v", err)
		}
		if err := ui.RenderTable(ui.ApplicationTable(apps)); err != nil {
			log.Fatalf("Error rendering applications: %v", err)
		}

	default:
		lo, err := filters.ParseBound(*salaryMin)
		if err != nil {
			log.Fatalf("Invalid -salary-min: %v", err)
		}
		hi, err := filters.ParseBound(*salaryMax)
		if err != nil {
			log.Fatalf("Invalid -salary-max: %v", err)
		}

		var jobs []models.Job
		var searchErr error
		panel := filters.NewPanel(tax, filters.State{}, func(s filters.State) {
			query := filters.BuildJobsQuery(s, "")
			if *debug {
				log.Printf("[filters] %s", query)
			}
			jobs, searchErr = api.SearchJobs(ctx, query)
		})
		panel.SetLanguage(*language)
		panel.SetCategory(*category)
		for _, level := range splitIDs(*seniority) {
			if !panel.ToggleSeniority(level) {
				pterm.Warning.Printfln("Unknown seniority %q ignored", level)
			}
		}
		for _, skill := range splitIDs(*skills) {
			if !panel.ToggleSkill(skill) {
				pterm.Warning.Printfln("Skill %q is not available for %s/%s, ignored", skill, *language, *category)
			}
		}
		panel.SetSalary(lo, hi)
		panel.SetSearchTerm(*search)
		panel.Apply()

		if searchErr != nil {
			log.Fatalf("Error searching jobs: %v", searchErr)
		}
		fmt.Printf("\nFound %d jobs\n\n", len(jobs))
		printJobs(jobs, *table)
	}
}

func printJobs(jobs []models.Job, table bool) {
	if !table {
		ui.PrintJobs(jobs)
		return
	}
	if err := ui.RenderTable(ui.JobTable(jobs)); err != nil {
		log.Fatalf("Error rendering jobs: %v", err)
	}
}

// moderate applies a decision to ids with a progress bar and returns the failure count.
func moderate(ctx context.Context, api *client.Client, ids []string, d client.Decision) int {
	if len(ids) == 0 {
		return 0
	}
	bar := pb.StartNew(len(ids))
	results := api.Moderate(ctx, ids, d, func() { bar.Increment() })
	bar.Finish()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			pterm.Error.Println(res.Err)
			continue
		}
		pterm.Success.Printfln("%s: %s", d, res.ID)
	}
	return failed
}

// requireRole exits unless the stored session passes one of checks.
func requireRole(sess *session.Session, want string, checks ...func(*session.Session) bool) {
	if !sess.Authenticated() {
		log.Fatal("Not signed in; use -login first")
	}
	if !hasRole(sess, checks...) {
		log.Fatalf("This action requires a %s account (signed in as %s)", want, sess.Role)
	}
}

func splitIDs(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
