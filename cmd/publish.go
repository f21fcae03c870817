// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/backend"
	"petway/cli/internal/domain"
	"petway/cli/internal/route"
	"petway/cli/internal/terminal"
	"petway/cli/internal/validate"
)

var (
	pubForm  validate.PetForm
	pubLat   float64
	pubLng   float64
	pubPhoto string
)

// petsPublishCmd creates a listing. Missing fields are asked for; the
// location is mandatory.
var petsPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a lost or found pet",
	Long: `The publish command creates a new listing with an optional photo. Name, type,
city and location (latitude and longitude) are required; anything not given as
a flag is asked for interactively.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if !a.enter(route.Publish) {
			return nil
		}

		form := pubForm
		flags := cmd.Flags()
		if err := askMissing(a.prompt, &form, flags.Changed); err != nil {
			return err
		}
		if flags.Changed("lat") {
			form.Lat = &pubLat
		} else if form.Lat, err = askFloat(a.prompt, "Latitude: "); err != nil {
			return err
		}
		if flags.Changed("lng") {
			form.Lng = &pubLng
		} else if form.Lng, err = askFloat(a.prompt, "Longitude: "); err != nil {
			return err
		}

		var photo *backend.Photo
		if pubPhoto != "" {
			f, err := os.Open(pubPhoto)
			if err != nil {
				return fmt.Errorf("open photo: %w", err)
			}
			defer f.Close()
			photo = &backend.Photo{Filename: filepath.Base(pubPhoto), Reader: f}
		}

		p, err := spin("Publishing", func() (*domain.Pet, error) {
			return a.pets.Publish(cmd.Context(), form, photo)
		})
		if err != nil {
			return fail(err, "publishing the pet")
		}
		a.router.Navigate(route.Home)
		pterm.Success.Printf("%s has been published\n", p.Name)
		if p.ID != "" {
			pterm.Info.Println("See it with: petway pets show " + p.ID)
		}
		return nil
	},
}

func init() {
	f := petsPublishCmd.Flags()
	f.StringVar(&pubForm.Name, "name", "", "Pet name")
	f.StringVar(&pubForm.Kind, "type", "", "Kind of animal (dog, cat...)")
	f.StringVar(&pubForm.Breed, "breed", "", "Breed")
	f.StringVar(&pubForm.Age, "age", "", "Age")
	f.StringVar(&pubForm.Description, "description", "", "Description")
	f.StringVar(&pubForm.City, "city", "", "City")
	f.StringVar(&pubForm.Phone, "phone", "", "Contact phone")
	f.Float64Var(&pubLat, "lat", 0, "Latitude of the place the pet was lost or found")
	f.Float64Var(&pubLng, "lng", 0, "Longitude of the place the pet was lost or found")
	f.StringVar(&pubPhoto, "photo", "", "Path to a photo")
}

// askMissing prompts for every text field whose flag was not given.
func askMissing(p *terminal.Prompter, form *validate.PetForm, changed func(string) bool) error {
	fields := []struct {
		flag   string
		prompt string
		dst    *string
	}{
		{"name", "Name: ", &form.Name},
		{"type", "Type: ", &form.Kind},
		{"breed", "Breed (optional): ", &form.Breed},
		{"age", "Age (optional): ", &form.Age},
		{"description", "Description (optional): ", &form.Description},
		{"city", "City: ", &form.City},
		{"phone", "Contact phone (optional): ", &form.Phone},
	}
	for _, f := range fields {
		if changed(f.flag) {
			continue
		}
		v, err := p.Line(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// askFloat returns nil for an empty or unparsable answer so validation
// reports the missing location.
func askFloat(p *terminal.Prompter, prompt string) (*float64, error) {
	s, err := p.Line(prompt)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, nil
	}
	return &v, nil
}
