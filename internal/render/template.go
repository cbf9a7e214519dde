package render

import "html/template"

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("page").Parse(pageTemplate))
}

const pageTemplate = `<!DOCTYPE HTML>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; background: #f5f5f7; color: #1d1d1f; }
    .container { max-width: 960px; margin: 0 auto; padding: 1rem; }
    .filters { position: sticky; top: 0; background: #f5f5f7; padding: .75rem 0; }
    .filters input, .filters select { padding: .4rem; margin-right: .5rem; }
    .tag-filter { display: inline-block; margin: .15rem; padding: .15rem .5rem; border: 1px solid #ccc; border-radius: 1rem; cursor: pointer; font-size: .85rem; }
    .tag-filter.active { background: #0071e3; color: #fff; border-color: #0071e3; }
    .paper-card { display: flex; gap: 1rem; background: #fff; border-radius: .5rem; padding: 1rem; margin: .75rem 0; }
    .paper-thumbnail img { width: 140px; border-radius: .25rem; }
    .paper-title { margin: 0 0 .25rem; font-size: 1.05rem; }
    .paper-year { color: #6e6e73; font-weight: normal; }
    .paper-authors { margin: 0 0 .5rem; color: #6e6e73; font-size: .9rem; }
    .paper-tag { display: inline-block; margin-right: .25rem; padding: .1rem .45rem; background: #e8e8ed; border-radius: 1rem; font-size: .75rem; }
    .paper-link { margin-right: .75rem; font-size: .85rem; }
    .paper-abstract { display: none; margin-top: .5rem; font-size: .9rem; }
    .paper-abstract.open { display: block; }
    .abstract-toggle { margin-top: .5rem; font-size: .8rem; }
  </style>
</head>
<body>
  <div class="container">
    <h1>{{.Title}}</h1>
    <div class="filters">
      <input type="search" id="search" placeholder="Search title or authors">
      <select id="year-filter">
        <option value="">All years</option>
{{- range .Years}}
        <option value="{{.}}">{{.}}</option>
{{- end}}
      </select>
      <div id="tag-filters">
{{- range .TagFilters}}
        <span class="tag-filter" data-tag="{{.}}">{{.}}</span>
{{- end}}
      </div>
    </div>
    <div id="papers">
{{- range .Cards}}
      <div class="paper-row" data-id="{{.ID}}" data-title="{{.Title}}" data-authors="{{.Authors}}" data-year="{{.Year}}" data-tags="{{.TagsJSON}}">
        <div class="paper-card">
          <div class="paper-thumbnail">
            <img src="{{.Thumbnail}}" alt="Thumbnail for {{.Title}}" loading="lazy">
          </div>
          <div class="paper-content">
            <h2 class="paper-title">{{.Title}} <span class="paper-year">({{.Year}})</span></h2>
            <p class="paper-authors">{{.Authors}}</p>
            <div class="paper-tags">
{{- range .Tags}}
              <span class="paper-tag">{{.}}</span>
{{- end}}
            </div>
            <div class="paper-links">
{{- range .Links}}
              <a href="{{.URL}}" class="paper-link" target="_blank" rel="noopener">{{.Label}}</a>
{{- end}}
            </div>
{{- if .Abstract}}
            <button class="abstract-toggle">Show Abstract</button>
            <div class="paper-abstract">{{.Abstract}}</div>
{{- end}}
          </div>
        </div>
      </div>
{{- end}}
    </div>
  </div>
  <script>
    const rows = Array.from(document.querySelectorAll('.paper-row'));
    const activeTags = new Set();
    function apply() {
      const q = document.getElementById('search').value.toLowerCase();
      const year = document.getElementById('year-filter').value;
      rows.forEach(row => {
        const tags = JSON.parse(row.dataset.tags);
        const text = (row.dataset.title + ' ' + row.dataset.authors).toLowerCase();
        let show = !q || text.includes(q);
        if (show && year) show = row.dataset.year === year;
        if (show && activeTags.size) {
          show = Array.from(activeTags).every(t => tags.includes(t));
        }
        row.style.display = show ? '' : 'none';
      });
    }
    document.getElementById('search').addEventListener('input', apply);
    document.getElementById('year-filter').addEventListener('change', apply);
    document.querySelectorAll('.tag-filter').forEach(el => {
      el.addEventListener('click', () => {
        const tag = el.dataset.tag;
        if (activeTags.has(tag)) { activeTags.delete(tag); el.classList.remove('active'); }
        else { activeTags.add(tag); el.classList.add('active'); }
        apply();
      });
    });
    document.querySelectorAll('.abstract-toggle').forEach(btn => {
      btn.addEventListener('click', () => {
        const abs = btn.nextElementSibling;
        const open = abs.classList.toggle('open');
        btn.textContent = open ? 'Hide Abstract' : 'Show Abstract';
      });
    });
  </script>
</body>
</html>
`
