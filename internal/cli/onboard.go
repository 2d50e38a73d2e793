package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sproutlog/internal/app"
	"sproutlog/internal/models"
	"sproutlog/internal/services"

	"github.com/spf13/cobra"
)

// FirstCropNickname is the nickname of the plant added during onboarding.
const FirstCropNickname = "My New Crop"

var errQuit = errors.New("quit")

// Console is the interactive signup and dashboard loop.
type Console struct {
	app  *app.App
	in   *bufio.Scanner
	out  io.Writer
	sess *services.Session
}

func NewConsole(a *app.App, in io.Reader, out io.Writer) *Console {
	return &Console{app: a, in: bufio.NewScanner(in), out: out, sess: services.NewSession()}
}

// Session exposes the current session state.
func (c *Console) Session() *services.Session {
	return c.sess
}

func newOnboardCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Sign up interactively and manage your inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.Close()
			return NewConsole(a, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

// Run walks through signup, plants the first crop and then serves the
// dashboard menu until the operator quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.println("\n--- SPROUTLOG: NEW USER SIGNUP ---")

	gardenName, err := c.signup(ctx)
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("input ended before signup completed")
	}
	if err != nil {
		return err
	}

	if c.sess.Returning {
		c.printf("Welcome back! (user ID: %d)\n", c.sess.UserID)
	} else {
		c.printf("User created! (ID: %d)\n", c.sess.UserID)
		c.printf("Garden '%s' established.\n", gardenName)
		if err := c.plantFirstCrop(gardenName); err != nil {
			return done(err)
		}
	}

	c.println()
	c.println(c.sess.Banner())
	if c.sess.Weather != nil {
		c.printf("Wind: %.1f mph\n", c.sess.Weather.WindMph)
	}

	return done(c.dashboard())
}

// done treats quitting and end of input as a normal exit.
func done(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) signup(ctx context.Context) (string, error) {
	for {
		req := services.SignupRequest{}
		var err error
		if req.Email, err = c.prompt("Enter email address: "); err != nil {
			return "", err
		}
		if req.DisplayName, err = c.prompt("Enter display name: "); err != nil {
			return "", err
		}
		if req.Password, err = c.prompt("Create password: "); err != nil {
			return "", err
		}
		if req.ZipCode, err = c.prompt("Enter Zip Code: "); err != nil {
			return "", err
		}
		gardenName, err := c.prompt("\nName your first garden: ")
		if err != nil {
			return "", err
		}
		if gardenName = strings.TrimSpace(gardenName); gardenName != "" {
			req.Gardens = []string{gardenName}
		}

		c.println("\nConnecting to weather service...")
		err = c.app.Onboarding.Signup(ctx, c.sess, req)
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.printf("Please check your input: %v\n\n", vErr)
			continue
		}
		if err != nil {
			c.printf("Signup failed: %v\n\n", err)
			continue
		}
		if gardenName == "" {
			gardenName = models.DefaultGardenNames[0]
		}
		return gardenName, nil
	}
}

func (c *Console) plantFirstCrop(gardenName string) error {
	gardens, err := c.app.Gardens.ListGardens(c.sess.UserID)
	if err != nil {
		return err
	}
	if len(gardens) == 0 {
		return fmt.Errorf("user %d has no garden", c.sess.UserID)
	}
	garden := gardens[0]
	for _, g := range gardens {
		if g.Name == gardenName {
			garden = g
			break
		}
	}

	if err := c.printSpecies("\n--- SELECT A CROP TO PLANT ---"); err != nil {
		return err
	}
	for {
		speciesID, err := c.promptID("\nEnter the ID number of the plant you want: ")
		if err != nil {
			return err
		}
		_, err = c.app.Inventory.Add(c.sess.UserID, services.AddPlantRequest{
			Nickname:  FirstCropNickname,
			SpeciesID: speciesID,
			GardenID:  garden.ID,
		})
		if err == nil {
			c.println("Seed planted in inventory.")
			return nil
		}
		if !services.IsNotFound(err) {
			return err
		}
		c.printf("No species with ID %d.\n", speciesID)
	}
}

const dashboardMenu = `
--- DASHBOARD ---
1. List plants
2. Search plants by nickname
3. Add plant
4. Mark plant harvested
5. Delete plant
6. List gardens
7. Add garden
q. Quit`

func (c *Console) dashboard() error {
	for {
		c.println(dashboardMenu)
		choice, err := c.prompt("> ")
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "1":
			err = c.listPlants("")
		case "2":
			var filter string
			if filter, err = c.prompt("Nickname contains: "); err == nil {
				err = c.listPlants(filter)
			}
		case "3":
			err = c.addPlant()
		case "4":
			err = c.changePlant("Harvest plant ID: ", c.app.Inventory.Harvest, "marked as harvested")
		case "5":
			err = c.changePlant("Delete plant ID: ", c.app.Inventory.Remove, "deleted")
		case "6":
			err = c.listGardens()
		case "7":
			err = c.addGarden()
		case "q", "quit", "exit":
			return errQuit
		default:
			c.println("Unknown option.")
		}
		if err != nil && !c.report(err) {
			return err
		}
	}
}

// report prints recoverable errors and reports whether the loop can go on.
func (c *Console) report(err error) bool {
	var vErr *services.ValidationError
	switch {
	case errors.Is(err, errQuit), errors.Is(err, io.EOF):
		return false
	case errors.As(err, &vErr):
		c.printf("Invalid input: %v\n", vErr)
		return true
	case services.IsNotFound(err):
		c.printf("Not found: %v\n", err)
		return true
	default:
		c.printf("Error: %v\n", err)
		return true
	}
}

func (c *Console) listPlants(filter string) error {
	rows, err := c.app.Inventory.List(c.sess.UserID, filter)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		c.println("No plants found.")
		return nil
	}
	c.printf("%-4s %-20s %-15s %-12s %-10s %s\n", "ID", "Nickname", "Species", "Planted", "Status", "Garden")
	for _, r := range rows {
		c.printf("%-4d %-20s %-15s %-12s %-10s %s\n",
			r.ID, r.Nickname, r.Species, r.DatePlanted.Format("2006-01-02"), r.Status, r.Garden)
	}
	return nil
}

func (c *Console) addPlant() error {
	nickname, err := c.prompt("Nickname: ")
	if err != nil {
		return err
	}
	if err := c.printSpecies("Species:"); err != nil {
		return err
	}
	speciesID, err := c.promptID("Species ID: ")
	if err != nil {
		return err
	}
	if err := c.listGardens(); err != nil {
		return err
	}
	gardenID, err := c.promptID("Garden ID: ")
	if err != nil {
		return err
	}
	entry, err := c.app.Inventory.Add(c.sess.UserID, services.AddPlantRequest{
		Nickname: nickname, SpeciesID: speciesID, GardenID: gardenID,
	})
	if err != nil {
		return err
	}
	c.printf("Planted '%s' (ID: %d).\n", entry.Nickname, entry.ID)
	return nil
}

func (c *Console) changePlant(label string, apply func(userID, id uint) error, verb string) error {
	id, err := c.promptID(label)
	if err != nil {
		return err
	}
	if err := apply(c.sess.UserID, id); err != nil {
		return err
	}
	c.printf("Plant %d %s.\n", id, verb)
	return nil
}

func (c *Console) listGardens() error {
	gardens, err := c.app.Gardens.ListGardens(c.sess.UserID)
	if err != nil {
		return err
	}
	for _, g := range gardens {
		c.printf("%d. %s\n", g.ID, g.Name)
	}
	return nil
}

func (c *Console) addGarden() error {
	name, err := c.prompt("Garden name: ")
	if err != nil {
		return err
	}
	garden, err := c.app.Gardens.CreateGarden(c.sess.UserID, services.CreateGardenRequest{Name: name})
	if err != nil {
		return err
	}
	c.printf("Garden '%s' established (ID: %d).\n", garden.Name, garden.ID)
	return nil
}

func (c *Console) printSpecies(title string) error {
	species, err := c.app.Gardens.ListSpecies()
	if err != nil {
		return err
	}
	c.println(title)
	for _, s := range species {
		c.printf("%d. %s (%s)\n", s.ID, s.CommonName, s.ScientificName)
	}
	return nil
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// promptID asks until a positive integer is entered.
func (c *Console) promptID(label string) (uint, error) {
	for {
		raw, err := c.prompt(label)
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err == nil && id > 0 {
			return uint(id), nil
		}
		if raw == "q" {
			return 0, errQuit
		}
		c.println("Please enter a number.")
	}
}

func (c *Console) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}
