package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facewatch/facewatch/pkg/models"
)

// People flag names
const (
	flagPersonID     = "id"
	flagPersonLabel  = "label"
	flagPeopleLimit  = "limit"
	flagPeopleOffset = "offset"
)

// personOutput represents the filtered output for a person
type personOutput struct {
	ID              uint   `json:"id"`
	Label           string `json:"label,omitempty"`
	AppearanceCount int    `json:"appearance_count"`
	LastSeen        string `json:"last_seen_at,omitempty"`
	Created         string `json:"created_at"`
}

// personListOutput represents the filtered output for a list of people
type personListOutput struct {
	People []personOutput `json:"people"`
}

// sightingOutput represents the filtered output for a sighting
type sightingOutput struct {
	PersonID uint    `json:"person_id"`
	Source   string  `json:"source"`
	ChatID   int64   `json:"chat_id,omitempty"`
	Distance float64 `json:"distance"`
	SeenAt   string  `json:"seen_at"`
}

// sightingListOutput represents the filtered output for a list of sightings
type sightingListOutput struct {
	Sightings []sightingOutput `json:"sightings"`
}

func init() {
	peopleCmd.AddCommand(listPeopleCmd)
	peopleCmd.AddCommand(getPersonCmd)
	peopleCmd.AddCommand(renamePersonCmd)
	peopleCmd.AddCommand(deletePersonCmd)
	peopleCmd.AddCommand(clearPeopleCmd)
	peopleCmd.AddCommand(listSightingsCmd)

	// Add flags for list
	listPeopleCmd.Flags().Int(flagPeopleLimit, 0, "Limit the number of people returned")
	listPeopleCmd.Flags().Int(flagPeopleOffset, 0, "Offset for paginating people")

	// Add flags for get
	getPersonCmd.Flags().UintP(flagPersonID, "i", 0, "Person ID")
	_ = getPersonCmd.MarkFlagRequired(flagPersonID)

	// Add flags for rename
	renamePersonCmd.Flags().UintP(flagPersonID, "i", 0, "Person ID")
	renamePersonCmd.Flags().StringP(flagPersonLabel, "l", "", "New label for the person")
	_ = renamePersonCmd.MarkFlagRequired(flagPersonID)
	_ = renamePersonCmd.MarkFlagRequired(flagPersonLabel)

	// Add flags for delete
	deletePersonCmd.Flags().UintP(flagPersonID, "i", 0, "Person ID")
	_ = deletePersonCmd.MarkFlagRequired(flagPersonID)

	// Add flags for sightings
	listSightingsCmd.Flags().UintP(flagPersonID, "i", 0, "Person ID")
	listSightingsCmd.Flags().Int(flagPeopleLimit, 0, "Limit the number of sightings returned")
	listSightingsCmd.Flags().Int(flagPeopleOffset, 0, "Offset for paginating sightings")
	_ = listSightingsCmd.MarkFlagRequired(flagPersonID)
}

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Manage the people the recognizer has learned",
}

// personToOutput filters a person for CLI display
func personToOutput(person models.Person) personOutput {
	out := personOutput{
		ID:              person.ID,
		Label:           person.Label,
		AppearanceCount: person.AppearanceCount,
		Created:         person.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if person.LastSeenAt != nil {
		out.LastSeen = person.LastSeenAt.Format("2006-01-02 15:04:05")
	}
	return out
}

// printJSON renders the output as indented JSON
func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}

var listPeopleCmd = &cobra.Command{
	Use:   "list",
	Short: "List known people",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt(flagPeopleLimit)
		offset, _ := cmd.Flags().GetInt(flagPeopleOffset)

		listOpts := &models.ListOptions{
			Limit:  limit,
			Offset: offset,
		}

		people, err := apiClient.GetPeople(context.Background(), listOpts)
		if err != nil {
			return fmt.Errorf("error listing people: %w", err)
		}

		output := personListOutput{
			People: make([]personOutput, len(people)),
		}
		for i, person := range people {
			output.People[i] = personToOutput(person)
		}

		return printJSON(output)
	},
}

var getPersonCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific person by their ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		personID, err := cmd.Flags().GetUint(flagPersonID)
		if err != nil {
			return fmt.Errorf("error getting person ID flag: %w", err)
		}
		if personID == 0 {
			return fmt.Errorf("person ID must be a positive number")
		}

		person, err := apiClient.GetPerson(context.Background(), personID)
		if err != nil {
			return fmt.Errorf("error getting person: %w", err)
		}

		return printJSON(personToOutput(person))
	},
}

var renamePersonCmd = &cobra.Command{
	Use:   "rename",
	Short: "Assign a label to a person",
	RunE: func(cmd *cobra.Command, _ []string) error {
		personID, err := cmd.Flags().GetUint(flagPersonID)
		if err != nil {
			return fmt.Errorf("error getting person ID flag: %w", err)
		}
		if personID == 0 {
			return fmt.Errorf("person ID must be a positive number")
		}

		label, err := cmd.Flags().GetString(flagPersonLabel)
		if err != nil {
			return fmt.Errorf("error getting label flag: %w", err)
		}

		person, err := apiClient.RenamePerson(context.Background(), personID, label)
		if err != nil {
			return fmt.Errorf("error renaming person: %w", err)
		}

		return printJSON(personToOutput(person))
	},
}

var deletePersonCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a person and their stored data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		personID, err := cmd.Flags().GetUint(flagPersonID)
		if err != nil {
			return fmt.Errorf("error getting person ID flag: %w", err)
		}
		if personID == 0 {
			return fmt.Errorf("person ID must be a positive number")
		}

		if err := apiClient.DeletePerson(context.Background(), personID); err != nil {
			return fmt.Errorf("error deleting person: %w", err)
		}

		fmt.Printf("Person ID %d deleted successfully\n", personID)
		return nil
	},
}

var clearPeopleCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every person and all stored face data",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := apiClient.ClearPeople(context.Background()); err != nil {
			return fmt.Errorf("error clearing people: %w", err)
		}

		fmt.Println("All face data cleared successfully")
		return nil
	},
}

var listSightingsCmd = &cobra.Command{
	Use:   "sightings",
	Short: "List the recorded sightings of a person",
	RunE: func(cmd *cobra.Command, _ []string) error {
		personID, err := cmd.Flags().GetUint(flagPersonID)
		if err != nil {
			return fmt.Errorf("error getting person ID flag: %w", err)
		}
		if personID == 0 {
			return fmt.Errorf("person ID must be a positive number")
		}

		limit, _ := cmd.Flags().GetInt(flagPeopleLimit)
		offset, _ := cmd.Flags().GetInt(flagPeopleOffset)

		listOpts := &models.ListOptions{
			Limit:  limit,
			Offset: offset,
		}

		sightings, err := apiClient.GetPersonSightings(context.Background(), personID, listOpts)
		if err != nil {
			return fmt.Errorf("error listing sightings: %w", err)
		}

		output := sightingListOutput{
			Sightings: make([]sightingOutput, len(sightings)),
		}
		for i, sighting := range sightings {
			output.Sightings[i] = sightingOutput{
				PersonID: sighting.PersonID,
				Source:   sighting.Source.String(),
				ChatID:   sighting.ChatID,
				Distance: sighting.Distance,
				SeenAt:   sighting.CreatedAt.Format("2006-01-02 15:04:05"),
			}
		}

		return printJSON(output)
	},
}

// GetPeopleCmd returns the people command
func GetPeopleCmd() *cobra.Command {
	return peopleCmd
}
