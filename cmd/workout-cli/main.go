package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/wldnjs95/workout-tracker-webapp/internal/client"
	"github.com/wldnjs95/workout-tracker-webapp/internal/form"
	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
	"github.com/wldnjs95/workout-tracker-webapp/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "workout tracker server URL (e.g. http://localhost:8000)")
	page := flag.Int("page", 1, "page number for list")
	limit := flag.Int("limit", 10, "workouts per page for list")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("workout-cli", Version)
		return
	}

	if *serverURL == "" {
		*serverURL = os.Getenv("WORKOUT_SERVER_URL")
	}
	if *serverURL == "" || flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	api := client.New(*serverURL)
	ctx := context.Background()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "list":
		err = runList(ctx, api, *page, *limit)
	case "show":
		err = requireArgs(cmd, 1, func(args []string) error {
			return runShow(ctx, api, args[0])
		})
	case "stats":
		err = runStats(ctx, api)
	case "add":
		err = runEditor(ctx, api, "")
	case "edit":
		err = requireArgs(cmd, 1, func(args []string) error {
			return runEditor(ctx, api, args[0])
		})
	case "resume":
		err = requireArgs(cmd, 1, func(args []string) error {
			return runResume(ctx, api, args[0])
		})
	case "drafts":
		err = runDrafts()
	case "delete-date":
		err = requireArgs(cmd, 1, func(args []string) error {
			return runDeleteDate(ctx, api, bufio.NewScanner(os.Stdin), args[0])
		})
	case "delete-exercise":
		err = requireArgs(cmd, 2, func(args []string) error {
			return runDeleteExercise(ctx, api, bufio.NewScanner(os.Stdin), args[0], args[1])
		})
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: workout-cli -server <URL> <command> [args]

Commands:
  list                              list workouts (use -page / -limit)
  show <id>                         show one workout
  stats                             show category statistics
  add                               interactively log a new workout
  edit <id>                         fetch a workout and edit it
  resume <draft-id>                 resume a saved draft
  drafts                            list saved drafts
  delete-date <date>                delete all workouts on a date
  delete-exercise <date> <name>     delete one exercise on a date

`)
	flag.PrintDefaults()
}

func requireArgs(cmd string, n int, fn func(args []string) error) error {
	args := flag.Args()[1:]
	if len(args) < n {
		return fmt.Errorf("%s requires %d argument(s)", cmd, n)
	}
	return fn(args)
}

func runList(ctx context.Context, api *client.Client, page, limit int) error {
	list, err := api.ListWorkouts(ctx, page, limit)
	if err != nil {
		return err
	}
	workouts := workout.GroupByDate(list.Data)
	if len(workouts) == 0 {
		fmt.Println("No workouts.")
		return nil
	}
	for _, w := range workouts {
		fmt.Printf("%s  %-10s  %s\n", w.Date, w.Category, w.ID)
		for _, ex := range w.Exercises {
			label := ex.Name
			if ex.Intensity != "" {
				label += " @ " + ex.Intensity
			}
			fmt.Printf("    %-30s %d sets\n", label, len(ex.Sets))
		}
	}
	fmt.Printf("\nPage %d of %d workout day(s)\n", page, (list.Total+limit-1)/limit)
	return nil
}

func runShow(ctx context.Context, api *client.Client, id string) error {
	rows, err := api.GetWorkoutRows(ctx, id)
	if err != nil {
		return err
	}
	w, err := workout.GroupByID(rows)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s  (%s)\n", w.Date, w.Category, w.ID)
	for _, ex := range w.Exercises {
		fmt.Printf("\n  %s", ex.Name)
		if ex.Intensity != "" {
			fmt.Printf(" @ %s", ex.Intensity)
		}
		if ex.Notes != "" {
			fmt.Printf("  [%s]", ex.Notes)
		}
		fmt.Println()
		for _, set := range ex.Sets {
			fmt.Printf("    set %d: plan %-12s actual %s\n", set.SetNumber, set.Plan, set.Actual)
		}
	}
	return nil
}

func runStats(ctx context.Context, api *client.Client) error {
	stats, err := api.GetStats(ctx)
	if err != nil {
		return err
	}
	if stats.MostFrequentCategory == "" {
		fmt.Println("No workouts logged yet.")
		return nil
	}
	fmt.Printf("Most frequent category: %s\n", stats.MostFrequentCategory)
	return nil
}

func runDrafts() error {
	store, err := openDraftStore()
	if err != nil {
		return err
	}
	defer store.Close()

	drafts, err := store.ListDrafts()
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		fmt.Println("No drafts.")
		return nil
	}
	for _, d := range drafts {
		mode := "new"
		if d.Editing {
			mode = "edit"
		}
		fmt.Printf("%s  %s  %-4s  %s (%d exercises)\n",
			d.ID, d.SavedAt.Format("2006-01-02 15:04"), mode, d.Workout.Date, len(d.Workout.Exercises))
	}
	return nil
}

// runDeleteDate asks for confirmation before deleting every workout on
// one date. A declined prompt sends nothing.
func runDeleteDate(ctx context.Context, api *client.Client, in *bufio.Scanner, date string) error {
	if !promptYesNo(in, fmt.Sprintf("Delete all workouts for %s?", date)) {
		fmt.Println("Aborted.")
		return nil
	}
	return api.DeleteByDate(ctx, date)
}

// runDeleteExercise asks for confirmation before deleting one
// exercise's rows on one date.
func runDeleteExercise(ctx context.Context, api *client.Client, in *bufio.Scanner, date, name string) error {
	if !promptYesNo(in, fmt.Sprintf("Delete exercise %q on %s?", name, date)) {
		fmt.Println("Aborted.")
		return nil
	}
	return api.DeleteExercise(ctx, date, name)
}

// runEditor drives an interactive form session: a new workout when id
// is empty, otherwise an edit of the fetched workout.
func runEditor(ctx context.Context, api *client.Client, id string) error {
	m := form.New()
	if id == "" {
		m.Init(time.Now())
	} else {
		rows, err := api.GetWorkoutRows(ctx, id)
		if err != nil {
			return err
		}
		w, err := workout.GroupByID(rows)
		if err != nil {
			return err
		}
		m.Load(w)
	}
	return editSession(ctx, api, m, "")
}

func runResume(ctx context.Context, api *client.Client, draftID string) error {
	store, err := openDraftStore()
	if err != nil {
		return err
	}
	m := form.New()
	if err := store.LoadDraft(draftID, m); err != nil {
		store.Close()
		return err
	}
	store.Close()
	return editSession(ctx, api, m, draftID)
}

func editSession(ctx context.Context, api *client.Client, m *form.Model, draftID string) error {
	store, err := openDraftStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if names, err := store.LoadCategories(); err == nil {
		m.AddCustomCategories(names)
	}

	in := bufio.NewScanner(os.Stdin)

	if date := prompt(in, fmt.Sprintf("Date [%s]", m.Workout().Date)); date != "" {
		m.SetDate(date)
	}
	chooseCategory(in, m)

	for i := range m.Workout().Exercises {
		editExercise(in, m, i)
	}
	for promptYesNo(in, "Add another exercise?") {
		m.AddExercise()
		editExercise(in, m, len(m.Workout().Exercises)-1)
	}

	// Drop exercises left without a name, except the only one.
	for i := len(m.Workout().Exercises) - 1; i >= 0; i-- {
		if m.Workout().Exercises[i].Name == "" && len(m.Workout().Exercises) > 1 {
			if err := m.RemoveExercise(i); err != nil {
				return err
			}
		}
	}

	draftID, err = store.SaveDraft(draftID, m)
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	if err := store.SaveCategories(m.CustomCategories()); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}

	if !promptYesNo(in, "Submit now?") {
		fmt.Printf("Draft saved: %s (resume with `workout-cli resume %s`)\n", draftID, draftID)
		return nil
	}

	if err := m.Submit(ctx, api); err != nil {
		fmt.Printf("Submit failed; draft kept as %s\n", draftID)
		return err
	}
	if err := store.DeleteDraft(draftID); err != nil {
		return fmt.Errorf("removing draft: %w", err)
	}
	fmt.Println("Workout saved.")
	return nil
}

func chooseCategory(in *bufio.Scanner, m *form.Model) {
	cats := m.Categories()
	fmt.Println("Category:")
	for i, c := range cats {
		fmt.Printf("  %d) %s\n", i+1, c)
	}
	fmt.Printf("  n) new category\n")

	current := m.Workout().Category
	answer := prompt(in, fmt.Sprintf("Choose [%s]", current))
	switch {
	case answer == "":
		return
	case answer == "n":
		m.SelectCategory(form.CategorySentinel)
		for m.AwaitingCategory() {
			text := prompt(in, "New category name")
			if text == "" {
				break
			}
			m.CommitNewCategory(text)
		}
	default:
		if i, err := strconv.Atoi(answer); err == nil && i >= 1 && i <= len(cats) {
			m.SelectCategory(cats[i-1])
		} else {
			m.SelectCategory(answer)
		}
	}
}

func editExercise(in *bufio.Scanner, m *form.Model, index int) {
	ex := m.Workout().Exercises[index]
	fmt.Printf("\nExercise %d:\n", index+1)

	name := prompt(in, fmt.Sprintf("  Name [%s]", ex.Name))
	intensity := prompt(in, fmt.Sprintf("  Intensity [%s]", ex.Intensity))
	notes := prompt(in, fmt.Sprintf("  Notes [%s]", ex.Notes))
	_ = m.SetExerciseField(index, func(e *models.Exercise) {
		if name != "" {
			e.Name = name
		}
		if intensity != "" {
			e.Intensity = intensity
		}
		if notes != "" {
			e.Notes = notes
		}
	})

	for i := range m.Workout().Exercises[index].Sets {
		editSet(in, m, index, i)
	}
	for promptYesNo(in, "  Add another set?") {
		_ = m.AddSet(index)
		editSet(in, m, index, len(m.Workout().Exercises[index].Sets)-1)
	}
}

func editSet(in *bufio.Scanner, m *form.Model, exerciseIndex, setIndex int) {
	set := m.Workout().Exercises[exerciseIndex].Sets[setIndex]
	plan := prompt(in, fmt.Sprintf("  Set %d plan [%s]", setIndex+1, set.Plan))
	actual := prompt(in, fmt.Sprintf("  Set %d actual [%s]", setIndex+1, set.Actual))
	_ = m.SetSetField(exerciseIndex, setIndex, func(s *models.Set) {
		if plan != "" {
			s.Plan = plan
		}
		if actual != "" {
			s.Actual = actual
		}
	})
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func promptYesNo(in *bufio.Scanner, label string) bool {
	answer := strings.ToLower(prompt(in, label+" [y/N]"))
	return answer == "y" || answer == "yes"
}

func openDraftStore() (*form.DraftStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return form.OpenDraftStore(filepath.Join(homeDir, ".workout-cli"))
}
