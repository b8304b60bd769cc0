package logic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Extract ---

func TestExtractComposables(t *testing.T) {
	source := `
import { useStyle } from '@primeuix/styles';
const style = useStyle();
const confirm = useConfirm();
const again = useStyle();
`
	sig := Extract(source)
	assert.Equal(t, []string{"useStyle", "useConfirm"}, sig.Composables)
}

func TestExtractVueImports(t *testing.T) {
	source := `import { ref, computed, watchEffect } from 'vue';`

	sig := Extract(source)
	assert.Equal(t, []string{"ref", "computed", "watchEffect"}, sig.VueImports)
}

func TestExtractVueImportsWordBoundaries(t *testing.T) {
	// toRefs must not additionally count as ref; watchEffect not as watch.
	sig := Extract(`const { a } = toRefs(props); watchEffect(update);`)
	assert.Equal(t, []string{"toRefs", "watchEffect"}, sig.VueImports)
}

func TestExtractMethodsSkipsReservedNames(t *testing.T) {
	source := `
export default {
	setup(props) {
		return {};
	},
	render() {
		return null;
	},
	methods: {
		onItemClick(event) {
			this.handleSelection(event);
		},
		handleSelection(event) {
		}
	}
};
`
	sig := Extract(source)
	assert.Equal(t, []string{"onItemClick", "handleSelection"}, sig.Methods)
}

func TestExtractEmits(t *testing.T) {
	source := `
emit('update:modelValue', value);
this.$emit("change", event);
emit('update:modelValue', other);
`
	sig := Extract(source)
	assert.Equal(t, []string{"update:modelValue", "change"}, sig.Emits)
}

func TestExtractEmptySource(t *testing.T) {
	sig := Extract("const answer = 42;")
	assert.True(t, sig.Empty())
}

// --- Run ---

func writeComponent(t *testing.T, root, dir, file, content string) {
	t.Helper()
	path := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(path, file), []byte(content), 0644))
}

func TestRunResolvesImplementationFiles(t *testing.T) {
	root := t.TempDir()
	writeComponent(t, root, "button", "Button.vue", `emit('click');`)
	writeComponent(t, root, "tag", "Tag.js", `import { computed } from 'vue'; const x = computed(compute);`)

	e := NewExtractor(nil)
	defer e.Close()

	signals, err := e.Run(root, nil)
	require.NoError(t, err)
	require.Len(t, signals, 2)

	assert.Equal(t, []string{"click"}, signals["button"].Emits)
	assert.Equal(t, []string{"computed"}, signals["tag"].VueImports)
}

func TestRunPrefersVueOverJS(t *testing.T) {
	root := t.TempDir()
	writeComponent(t, root, "knob", "Knob.vue", `emit('from-vue');`)
	writeComponent(t, root, "knob", "Knob.js", `emit('from-js');`)

	e := NewExtractor(nil)
	defer e.Close()

	signals, err := e.Run(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"from-vue"}, signals["knob"].Emits)
}

func TestRunExtractsFromBrokenJS(t *testing.T) {
	root := t.TempDir()
	// A truncated source still yields signals; the pattern matching does
	// not depend on the file parsing cleanly.
	writeComponent(t, root, "tag", "Tag.js", `
import { ref } from 'vue';
const visible = ref(false;
emit('close'
`)

	e := NewExtractor(nil)
	defer e.Close()

	signals, err := e.Run(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ref"}, signals["tag"].VueImports)
	assert.Equal(t, []string{"close"}, signals["tag"].Emits)
}

func TestRunOmitsSilentComponents(t *testing.T) {
	root := t.TempDir()
	writeComponent(t, root, "button", "Button.vue", `const answer = 42;`)
	writeComponent(t, root, "portal", "index.d.ts", `export {};`)

	e := NewExtractor(nil)
	defer e.Close()

	signals, err := e.Run(root, nil)
	require.NoError(t, err)
	assert.Empty(t, signals)
}
