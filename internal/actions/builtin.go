package actions

import (
	"fmt"
	"strings"

	"github.com/soar/inputicons/internal/input"
)

// builtinActions lists the engine's stock ui_* actions with their default
// bindings. Actions without defaults are listed so the name set stays
// complete, but are not registered.
var builtinActions = []struct {
	name     string
	bindings string
}{
	{"ui_accept", "key:enter, key:kp_enter, key:space, joypad_button:a"},
	{"ui_cancel", "key:escape, joypad_button:b"},
	{"ui_copy", "key:c+cmd_or_ctrl, key:insert+cmd_or_ctrl"},
	{"ui_cut", "key:x+cmd_or_ctrl, key:delete+shift"},
	{"ui_down", "key:down, joypad_button:dpad_down, joypad_motion:left_y+"},
	{"ui_end", "key:end"},
	{"ui_filedialog_refresh", "key:f5"},
	{"ui_filedialog_show_hidden", "key:h+alt"},
	{"ui_filedialog_up_one_level", "key:backspace"},
	{"ui_focus_next", "key:tab"},
	{"ui_focus_prev", "key:tab+shift"},
	{"ui_graph_delete", "key:delete"},
	{"ui_graph_duplicate", "key:d+cmd_or_ctrl"},
	{"ui_home", "key:home"},
	{"ui_left", "key:left, joypad_button:dpad_left, joypad_motion:left_x-"},
	{"ui_menu", ""},
	{"ui_page_down", "key:page_down"},
	{"ui_page_up", "key:page_up"},
	{"ui_paste", "key:v+cmd_or_ctrl, key:insert+shift"},
	{"ui_redo", "key:z+cmd_or_ctrl+shift, key:y+cmd_or_ctrl"},
	{"ui_right", "key:right, joypad_button:dpad_right, joypad_motion:left_x+"},
	{"ui_select", "key:space, joypad_button:y"},
	{"ui_swap_input_direction", ""},
	{"ui_text_add_selection_for_next_occurrence", "key:d+cmd_or_ctrl"},
	{"ui_text_backspace", "key:backspace, key:backspace+shift"},
	{"ui_text_backspace_all_to_left", ""},
	{"ui_text_backspace_all_to_left.macos", "key:backspace+meta"},
	{"ui_text_backspace_word", "key:backspace+ctrl"},
	{"ui_text_backspace_word.macos", "key:backspace+alt"},
	{"ui_text_caret_add_above", "key:up+shift+ctrl"},
	{"ui_text_caret_add_above.macos", "key:o+shift+ctrl"},
	{"ui_text_caret_add_below", "key:down+shift+ctrl"},
	{"ui_text_caret_add_below.macos", "key:l+shift+ctrl"},
	{"ui_text_caret_document_end", "key:end+ctrl"},
	{"ui_text_caret_document_end.macos", "key:down+meta, key:end+meta"},
	{"ui_text_caret_document_start", "key:home+ctrl"},
	{"ui_text_caret_document_start.macos", "key:up+meta, key:home+meta"},
	{"ui_text_caret_down", "key:down"},
	{"ui_text_caret_left", "key:left"},
	{"ui_text_caret_line_end", "key:end"},
	{"ui_text_caret_line_end.macos", "key:e+ctrl, key:right+meta"},
	{"ui_text_caret_line_start", "key:home"},
	{"ui_text_caret_line_start.macos", "key:a+ctrl, key:left+meta"},
	{"ui_text_caret_page_down", "key:page_down"},
	{"ui_text_caret_page_up", "key:page_up"},
	{"ui_text_caret_right", "key:right"},
	{"ui_text_caret_up", "key:up"},
	{"ui_text_caret_word_left", "key:left+ctrl"},
	{"ui_text_caret_word_left.macos", "key:left+alt"},
	{"ui_text_caret_word_right", "key:right+ctrl"},
	{"ui_text_caret_word_right.macos", "key:right+alt"},
	{"ui_text_clear_carets_and_selection", "key:escape"},
	{"ui_text_completion_accept", "key:enter, key:kp_enter"},
	{"ui_text_completion_query", "key:space+ctrl"},
	{"ui_text_completion_replace", "key:tab"},
	{"ui_text_dedent", "key:tab+shift"},
	{"ui_text_delete", "key:delete"},
	{"ui_text_delete_all_to_right", ""},
	{"ui_text_delete_all_to_right.macos", "key:delete+meta"},
	{"ui_text_delete_word", "key:delete+ctrl"},
	{"ui_text_delete_word.macos", "key:delete+alt"},
	{"ui_text_indent", "key:tab"},
	{"ui_text_newline", "key:enter, key:kp_enter"},
	{"ui_text_newline_above", "key:enter+cmd_or_ctrl+shift, key:kp_enter+cmd_or_ctrl+shift"},
	{"ui_text_newline_blank", "key:enter+cmd_or_ctrl, key:kp_enter+cmd_or_ctrl"},
	{"ui_text_scroll_down", "key:down+ctrl"},
	{"ui_text_scroll_down.macos", "key:down+ctrl+alt"},
	{"ui_text_scroll_up", "key:up+ctrl"},
	{"ui_text_scroll_up.macos", "key:up+ctrl+alt"},
	{"ui_text_select_all", "key:a+cmd_or_ctrl"},
	{"ui_text_select_word_under_caret", "key:g+alt"},
	{"ui_text_select_word_under_caret.macos", "key:g+ctrl+meta"},
	{"ui_text_submit", "key:enter, key:kp_enter"},
	{"ui_text_toggle_insert_mode", "key:insert"},
	{"ui_undo", "key:z+cmd_or_ctrl"},
	{"ui_up", "key:up, joypad_button:dpad_up, joypad_motion:left_y-"},
}

// BuiltinNames returns every stock action name, including those without
// default bindings.
func BuiltinNames() []string {
	names := make([]string, len(builtinActions))
	for i, a := range builtinActions {
		names[i] = a.name
	}
	return names
}

// Builtins is the Source for the stock ui_* actions.
type Builtins struct{}

func (Builtins) Name() string { return "builtin" }

func (Builtins) Actions() (map[string][]input.Event, error) {
	out := make(map[string][]input.Event, len(builtinActions))
	for _, a := range builtinActions {
		if a.bindings == "" {
			continue
		}
		events, err := parseBindingList(strings.Split(a.bindings, ","))
		if err != nil {
			return nil, fmt.Errorf("builtin action %s: %w", a.name, err)
		}
		out[a.name] = events
	}
	return out, nil
}

// Static is a fixed Source, handy for hosts that already hold their
// action map in memory.
type Static map[string][]input.Event

func (Static) Name() string { return "static" }

func (s Static) Actions() (map[string][]input.Event, error) {
	out := make(map[string][]input.Event, len(s))
	for k, v := range s {
		out[k] = append([]input.Event(nil), v...)
	}
	return out, nil
}

func parseBindingList(items []string) ([]input.Event, error) {
	events := make([]input.Event, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		ev, err := input.ParseBinding(item)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
